// client_integration_test.go
//go:build integration
// +build integration

package client

import (
	"errors"
	"net/http"
	"testing"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

var c = Client{
	Addr:   "http://localhost:3333",
	Client: http.Client{},
}

func TestPing(t *testing.T) {
	if s, err := c.Ping(); err != nil || s != "pong" {
		t.Fail()
	}
}

func TestCreateAndGet(t *testing.T) {
	id, err := c.CreateArticle(model.ArticleInput{Title: "integration", Markdown: "# Hi"})
	if err != nil {
		t.Fatalf("CreateArticle() error = %v", err)
	}

	a, err := c.GetArticle(id)
	if err != nil {
		t.Fatalf("GetArticle() error = %v", err)
	}
	if a.ID != id || a.Title != "integration" {
		t.Errorf("GetArticle() = %+v", a)
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := c.GetArticle("does-not-exist")

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("GetArticle() error = %v, want 500 APIError", err)
	}
}
