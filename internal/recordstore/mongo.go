package recordstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/SergeyParamoshkin/articles/internal/record"
)

// Mongo stores records as documents of one collection keyed by _id.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type mongoDocument struct {
	ID         string                    `bson:"_id"`
	Attributes map[string]mongoAttribute `bson:"attributes"`
}

type mongoAttribute struct {
	S    *string `bson:"s,omitempty"`
	N    *string `bson:"n,omitempty"`
	BOOL *bool   `bson:"bool,omitempty"`
}

func OpenMongo(dsn, database, collection string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Mongo{client: client, collection: client.Database(database).Collection(collection)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Get(ctx context.Context, id string) (record.Record, error) {
	var doc mongoDocument

	err := m.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return record.Record{}, nil
	}
	if err != nil {
		return nil, fail("get", err)
	}

	return fromDocument(doc)
}

func (m *Mongo) Put(ctx context.Context, r record.Record) error {
	doc, err := toDocument(r)
	if err != nil {
		return fail("put", err)
	}

	_, err = m.collection.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.ID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fail("put", err)
	}

	return nil
}

func (m *Mongo) Scan(ctx context.Context, limit int) ([]record.Record, error) {
	cursor, err := m.collection.Find(ctx, bson.D{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fail("scan", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fail("scan", err)
	}

	records := make([]record.Record, 0, len(docs))
	for _, doc := range docs {
		r, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, nil
}

func toDocument(r record.Record) (mongoDocument, error) {
	id, err := keyOf(r)
	if err != nil {
		return mongoDocument{}, err
	}

	doc := mongoDocument{ID: id, Attributes: make(map[string]mongoAttribute, len(r))}

	for name, v := range r {
		var a mongoAttribute

		switch v.Kind() {
		case record.KindString:
			s, _ := v.AsString()
			a.S = &s
		case record.KindNumber:
			n, _ := v.NumberString()
			a.N = &n
		case record.KindBool:
			b, _ := v.AsBool()
			a.BOOL = &b
		default:
			return mongoDocument{}, invalidAttributeError(name)
		}

		doc.Attributes[name] = a
	}

	return doc, nil
}

func fromDocument(doc mongoDocument) (record.Record, error) {
	r := make(record.Record, len(doc.Attributes))

	for name, a := range doc.Attributes {
		switch {
		case a.S != nil:
			r[name] = record.String(*a.S)
		case a.N != nil:
			n, err := record.NumberText(*a.N)
			if err != nil {
				return nil, fail("decode", err)
			}
			r[name] = n
		case a.BOOL != nil:
			r[name] = record.Bool(*a.BOOL)
		}
	}

	return r, nil
}
