// Package recordstore holds the key-value record store clients that
// persist article records. All backends key records by record.FieldID.
package recordstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyParamoshkin/articles/internal/record"
)

// Store is a record store addressed by a single string key.
type Store interface {
	// Get returns the record stored under id, or an empty record when
	// there is none.
	Get(ctx context.Context, id string) (record.Record, error)
	// Put writes r under its id attribute, replacing any previous record.
	Put(ctx context.Context, r record.Record) error
	// Scan returns up to limit records in the order the backend yields them.
	Scan(ctx context.Context, limit int) ([]record.Record, error)
}

// StoreFailure wraps an error returned by a backend.
type StoreFailure struct {
	Op  string
	Err error
}

func (e *StoreFailure) Error() string {
	return fmt.Sprintf("record store %s: %v", e.Op, e.Err)
}

func (e *StoreFailure) Unwrap() error {
	return e.Err
}

var errNoKey = errors.New("record has no string " + record.FieldID + " attribute")

func keyOf(r record.Record) (string, error) {
	id, ok := r[record.FieldID].AsString()
	if !ok || id == "" {
		return "", errNoKey
	}

	return id, nil
}

func fail(op string, err error) error {
	return &StoreFailure{Op: op, Err: err}
}
