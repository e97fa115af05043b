package article

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/router"
)

// QueryID is the query parameter GetArticle reads the article id from.
const QueryID = "id"

// Handlers binds the repository operations to their routes.
func Handlers(repo *Repository) router.Handlers {
	return router.Handlers{
		CreateArticle:  CreateArticle{Repo: repo},
		GetArticle:     GetArticle{Repo: repo},
		RandomArticles: RandomArticles{Repo: repo},
	}
}

// CreateArticle persists the posted article and answers with its id.
type CreateArticle struct {
	Repo *Repository
}

func (h CreateArticle) Handle(ctx context.Context, ev router.Event) (interface{}, error) {
	if strings.TrimSpace(ev.Body) == "" {
		return nil, &MissingParameterError{Name: "body"}
	}

	var in model.ArticleInput
	if err := render.DecodeJSON(strings.NewReader(ev.Body), &in); err != nil {
		return nil, fmt.Errorf("decode article body: %w", err)
	}

	return h.Repo.Create(ctx, in)
}

// GetArticle returns the article named by the "id" query parameter.
type GetArticle struct {
	Repo *Repository
}

func (h GetArticle) Handle(ctx context.Context, ev router.Event) (interface{}, error) {
	id, ok := ev.Query(QueryID)
	if !ok || id == "" {
		return nil, &MissingParameterError{Name: QueryID}
	}

	return h.Repo.Get(ctx, id)
}

// RandomArticles returns up to SampleSize stored articles.
type RandomArticles struct {
	Repo *Repository
}

func (h RandomArticles) Handle(ctx context.Context, _ router.Event) (interface{}, error) {
	return h.Repo.Random(ctx)
}
