package recordstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SergeyParamoshkin/articles/internal/record"
)

// DynamoDBAPI is the part of *dynamodb.Client the store calls.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoDB stores records as items of one table keyed by "id".
type DynamoDB struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDB(client DynamoDBAPI, table string) *DynamoDB {
	return &DynamoDB{client: client, table: table}
}

func (d *DynamoDB) Get(ctx context.Context, id string) (record.Record, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			record.FieldID: &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fail("get", err)
	}

	return fromItem(out.Item)
}

func (d *DynamoDB) Put(ctx context.Context, r record.Record) error {
	if _, err := keyOf(r); err != nil {
		return fail("put", err)
	}

	item, err := toItem(r)
	if err != nil {
		return fail("put", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fail("put", err)
	}

	return nil
}

func (d *DynamoDB) Scan(ctx context.Context, limit int) ([]record.Record, error) {
	out, err := d.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(d.table),
		Limit:     aws.Int32(int32(limit)),
		Select:    types.SelectAllAttributes,
	})
	if err != nil {
		return nil, fail("scan", err)
	}

	records := make([]record.Record, 0, len(out.Items))
	for _, item := range out.Items {
		r, err := fromItem(item)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, nil
}

func toItem(r record.Record) (map[string]types.AttributeValue, error) {
	item := make(map[string]types.AttributeValue, len(r))

	for name, v := range r {
		switch v.Kind() {
		case record.KindString:
			s, _ := v.AsString()
			item[name] = &types.AttributeValueMemberS{Value: s}
		case record.KindNumber:
			n, _ := v.NumberString()
			item[name] = &types.AttributeValueMemberN{Value: n}
		case record.KindBool:
			b, _ := v.AsBool()
			item[name] = &types.AttributeValueMemberBOOL{Value: b}
		default:
			return nil, invalidAttributeError(name)
		}
	}

	return item, nil
}

// fromItem keeps the scalar attributes it understands and drops the rest;
// Decode reports any expected attribute that went missing.
func fromItem(item map[string]types.AttributeValue) (record.Record, error) {
	r := make(record.Record, len(item))

	for name, av := range item {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			r[name] = record.String(v.Value)
		case *types.AttributeValueMemberN:
			n, err := record.NumberText(v.Value)
			if err != nil {
				return nil, fail("decode", err)
			}
			r[name] = n
		case *types.AttributeValueMemberBOOL:
			r[name] = record.Bool(v.Value)
		}
	}

	return r, nil
}

type invalidAttributeError string

func (e invalidAttributeError) Error() string {
	return "attribute " + string(e) + " has no value"
}
