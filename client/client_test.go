// client_test.go
//go:build !integration
// +build !integration

package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/article"
	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/recordstore"
	"github.com/SergeyParamoshkin/articles/internal/router"
	"github.com/SergeyParamoshkin/articles/internal/server"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	repo, err := article.NewRepository(recordstore.NewMemory(), model.BodyMarkdown,
		article.WithClock(func() time.Time { return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.Local) }))
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}

	logger := zap.NewNop().Sugar()
	ts := httptest.NewServer(server.New(router.NewDispatcher(article.Handlers(repo), logger), logger).Router())
	t.Cleanup(ts.Close)

	return &Client{Addr: ts.URL, Client: http.Client{}}
}

func TestClientRoundTrip(t *testing.T) {
	c := newTestClient(t)

	if s, err := c.Ping(); err != nil || s != "pong" {
		t.Fatalf("Ping() = %q, %v", s, err)
	}

	articles, err := c.RandomArticles()
	if err != nil || len(articles) != 0 {
		t.Fatalf("RandomArticles() = %v, %v, want empty", articles, err)
	}

	id, err := c.CreateArticle(model.ArticleInput{Title: "T", Category: "C", Abstract: "A", Markdown: "# Hi"})
	if err != nil {
		t.Fatalf("CreateArticle() error = %v", err)
	}

	a, err := c.GetArticle(id)
	if err != nil {
		t.Fatalf("GetArticle() error = %v", err)
	}
	if a.ID != id || a.Title != "T" || a.Markdown == nil || *a.Markdown != "# Hi" || a.CreationDate != "2026/10/18" {
		t.Errorf("GetArticle() = %+v", a)
	}

	articles, err = c.RandomArticles()
	if err != nil || len(articles) != 1 || articles[0].ID != id {
		t.Errorf("RandomArticles() = %v, %v", articles, err)
	}
}

func TestClientAPIError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.GetArticle("missing")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetArticle() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "Internal server error" {
		t.Errorf("APIError = %+v", apiErr)
	}
}
