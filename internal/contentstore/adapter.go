// Package contentstore persists uploaded article documents as objects
// named after the article id.
package contentstore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ContentType of every stored document.
const ContentType = "text/html"

// ObjectStore writes whole objects by key.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
}

// EncodingError reports an upload that is not base64-encoded text.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("content encoding: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

var errNotText = errors.New("decoded payload is not valid UTF-8 text")

// Adapter decodes uploads and hands them to an ObjectStore.
type Adapter struct {
	objects ObjectStore
}

func New(objects ObjectStore) *Adapter {
	return &Adapter{objects: objects}
}

// Key is the object key of the document belonging to article id.
func Key(id string) string {
	return id + ".html"
}

// Decode turns a base64 upload into the document text.
func Decode(base64Text string) ([]byte, error) {
	body, err := base64.StdEncoding.DecodeString(base64Text)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	if !utf8.Valid(body) {
		return nil, &EncodingError{Err: errNotText}
	}

	return body, nil
}

// Store decodes base64Text and writes it under Key(id).
func (a *Adapter) Store(ctx context.Context, base64Text, id string) error {
	body, err := Decode(base64Text)
	if err != nil {
		return err
	}

	if err := a.objects.PutObject(ctx, Key(id), body, ContentType); err != nil {
		return fmt.Errorf("store %s: %w", Key(id), err)
	}

	return nil
}
