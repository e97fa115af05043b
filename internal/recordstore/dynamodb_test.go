package recordstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SergeyParamoshkin/articles/internal/record"
)

// fakeDynamoDB is a single-table, string-keyed stand-in for DynamoDB.
type fakeDynamoDB struct {
	table string
	items map[string]map[string]types.AttributeValue
	order []string
	err   error

	lastScan *dynamodb.ScanInput
}

func newFakeDynamoDB(table string) *fakeDynamoDB {
	return &fakeDynamoDB{table: table, items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamoDB) checkTable(name *string) error {
	if f.err != nil {
		return f.err
	}
	if aws.ToString(name) != f.table {
		return errors.New("ResourceNotFoundException: " + aws.ToString(name))
	}

	return nil
}

func (f *fakeDynamoDB) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if err := f.checkTable(in.TableName); err != nil {
		return nil, err
	}

	key := in.Key[record.FieldID].(*types.AttributeValueMemberS).Value

	return &dynamodb.GetItemOutput{Item: f.items[key]}, nil
}

func (f *fakeDynamoDB) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if err := f.checkTable(in.TableName); err != nil {
		return nil, err
	}

	key := in.Item[record.FieldID].(*types.AttributeValueMemberS).Value
	if _, ok := f.items[key]; !ok {
		f.order = append(f.order, key)
	}
	f.items[key] = in.Item

	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if err := f.checkTable(in.TableName); err != nil {
		return nil, err
	}
	f.lastScan = in

	out := &dynamodb.ScanOutput{}
	for _, key := range f.order {
		if in.Limit != nil && len(out.Items) == int(*in.Limit) {
			break
		}
		out.Items = append(out.Items, f.items[key])
	}

	return out, nil
}

func TestDynamoDB(t *testing.T) {
	testStore(t, NewDynamoDB(newFakeDynamoDB("articles"), "articles"))
}

func TestDynamoDBScanRequest(t *testing.T) {
	fake := newFakeDynamoDB("articles")
	d := NewDynamoDB(fake, "articles")

	if _, err := d.Scan(context.Background(), 20); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if got := aws.ToInt32(fake.lastScan.Limit); got != 20 {
		t.Errorf("Limit = %d, want 20", got)
	}
	if fake.lastScan.Select != types.SelectAllAttributes {
		t.Errorf("Select = %q, want %q", fake.lastScan.Select, types.SelectAllAttributes)
	}
}

func TestDynamoDBFailure(t *testing.T) {
	fake := newFakeDynamoDB("articles")
	fake.err = errors.New("throttled")
	d := NewDynamoDB(fake, "articles")
	ctx := context.Background()

	_, getErr := d.Get(ctx, "x")
	putErr := d.Put(ctx, article("x"))
	_, scanErr := d.Scan(ctx, 20)

	for op, err := range map[string]error{"get": getErr, "put": putErr, "scan": scanErr} {
		var sf *StoreFailure
		if !errors.As(err, &sf) || sf.Op != op {
			t.Errorf("%s error = %v, want *StoreFailure{Op: %q}", op, err, op)
		}
		if !errors.Is(err, fake.err) {
			t.Errorf("%s error does not wrap the client error", op)
		}
	}
}

func TestFromItemDropsUnsupportedAttributes(t *testing.T) {
	r, err := fromItem(map[string]types.AttributeValue{
		"id":   &types.AttributeValueMemberS{Value: "1"},
		"tags": &types.AttributeValueMemberSS{Value: []string{"a"}},
		"gone": &types.AttributeValueMemberNULL{Value: true},
	})
	if err != nil {
		t.Fatalf("fromItem() error = %v", err)
	}

	if len(r) != 1 {
		t.Errorf("fromItem() = %v, want only id", r)
	}
}
