package article

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/contentstore"
	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/recordstore"
	"github.com/SergeyParamoshkin/articles/internal/router"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

const internalErrorBody = `{"message":"Internal server error"}`

func newDispatcher(t *testing.T, repo *Repository) *router.Dispatcher {
	t.Helper()

	return router.NewDispatcher(Handlers(repo), zap.NewNop().Sugar())
}

func TestCreateThenGet(t *testing.T) {
	ctx := context.Background()
	d := newDispatcher(t, newMarkdownRepo(t, recordstore.NewMemory()))

	env := d.Dispatch(ctx, router.Event{
		Path:       "/article",
		HTTPMethod: "POST",
		Body:       `{"title":"T","category":"C","abstract":"A","markdown":"# Hi"}`,
	})
	if env.StatusCode != 200 {
		t.Fatalf("POST /article = %d %s", env.StatusCode, env.Body)
	}

	var created model.Created
	if err := json.Unmarshal([]byte(env.Body), &created); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !uuidPattern.MatchString(created.ArticleID) {
		t.Errorf("articleId = %q, want a uuid", created.ArticleID)
	}

	env = d.Dispatch(ctx, router.Event{
		Path:                  "/article",
		HTTPMethod:            "GET",
		QueryStringParameters: map[string]string{"id": created.ArticleID},
	})
	if env.StatusCode != 200 {
		t.Fatalf("GET /article = %d %s", env.StatusCode, env.Body)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(env.Body), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := map[string]string{
		"id": created.ArticleID, "title": "T", "category": "C", "abstract": "A",
		"markdown": "# Hi", "creationDate": "2026/10/18",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GET /article mismatch (-want +got):\n%s", diff)
	}
}

func TestRandomEmptyStore(t *testing.T) {
	d := newDispatcher(t, newMarkdownRepo(t, recordstore.NewMemory()))

	env := d.Dispatch(context.Background(), router.Event{Path: "/article/random", HTTPMethod: "GET"})
	if env.StatusCode != 200 || env.Body != "[]" {
		t.Errorf("GET /article/random = %d %s, want 200 []", env.StatusCode, env.Body)
	}
}

func TestFailuresCollapseTo500(t *testing.T) {
	fileRepo, err := NewRepository(recordstore.NewMemory(), model.BodyFile,
		WithContentStore(contentstore.New(contentstore.NewMemory())))
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}

	tests := []struct {
		name string
		repo *Repository
		ev   router.Event
	}{
		{
			name: "unknown id",
			repo: newMarkdownRepo(t, recordstore.NewMemory()),
			ev:   router.Event{Path: "/article", HTTPMethod: "GET", QueryStringParameters: map[string]string{"id": "nope"}},
		},
		{
			name: "missing id",
			repo: newMarkdownRepo(t, recordstore.NewMemory()),
			ev:   router.Event{Path: "/article", HTTPMethod: "GET"},
		},
		{
			name: "legacy articleId parameter",
			repo: newMarkdownRepo(t, recordstore.NewMemory()),
			ev:   router.Event{Path: "/article", HTTPMethod: "GET", QueryStringParameters: map[string]string{"articleId": "x"}},
		},
		{
			name: "missing body",
			repo: newMarkdownRepo(t, recordstore.NewMemory()),
			ev:   router.Event{Path: "/article", HTTPMethod: "POST"},
		},
		{
			name: "malformed json",
			repo: newMarkdownRepo(t, recordstore.NewMemory()),
			ev:   router.Event{Path: "/article", HTTPMethod: "POST", Body: `{"title":`},
		},
		{
			name: "malformed base64 file",
			repo: fileRepo,
			ev:   router.Event{Path: "/article", HTTPMethod: "POST", Body: `{"title":"T","file":"***"}`},
		},
		{
			name: "unregistered route",
			repo: newMarkdownRepo(t, recordstore.NewMemory()),
			ev:   router.Event{Path: "/article/random", HTTPMethod: "DELETE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newDispatcher(t, tt.repo).Dispatch(context.Background(), tt.ev)

			if env.StatusCode != 500 || env.Body != internalErrorBody {
				t.Errorf("Dispatch() = %d %s, want 500 %s", env.StatusCode, env.Body, internalErrorBody)
			}
		})
	}
}

func TestCreateFileUpload(t *testing.T) {
	objects := contentstore.NewMemory()

	repo, err := NewRepository(recordstore.NewMemory(), model.BodyFile, WithContentStore(contentstore.New(objects)))
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}

	body, _ := json.Marshal(map[string]string{
		"title": "T",
		"file":  base64.StdEncoding.EncodeToString([]byte("<p>hi</p>")),
	})

	env := newDispatcher(t, repo).Dispatch(context.Background(), router.Event{
		Path: "/article", HTTPMethod: "POST", Body: string(body),
	})
	if env.StatusCode != 200 {
		t.Fatalf("POST /article = %d %s", env.StatusCode, env.Body)
	}

	var created model.Created
	_ = json.Unmarshal([]byte(env.Body), &created)

	got, ok := objects.Object(created.ArticleID + ".html")
	if !ok || string(got) != "<p>hi</p>" {
		t.Errorf("stored object = %q (%v), want <p>hi</p>", got, ok)
	}
}
