package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SergeyParamoshkin/articles/internal/contentstore"
	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/record"
	"github.com/SergeyParamoshkin/articles/internal/recordstore"
)

// SampleSize caps the number of articles Random returns.
const SampleSize = 20

// MissingParameterError reports a required request parameter or body
// field that was not supplied.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing parameter %q", e.Name)
}

var errNoContentStore = errors.New("file body mode needs a content store")

// Repository creates and reads articles. Its operations are independent
// and not transactional: in file mode a record may be written while the
// matching document is not.
type Repository struct {
	records recordstore.Store
	content *contentstore.Adapter
	codec   record.Codec
	newID   func() string
	now     func() time.Time
}

type Option func(*Repository)

// WithContentStore sets where file mode documents go.
func WithContentStore(content *contentstore.Adapter) Option {
	return func(r *Repository) {
		r.content = content
	}
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) {
		r.newID = newID
	}
}

// WithClock replaces time.Now for creation dates.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

func NewRepository(records recordstore.Store, body model.BodyMode, opts ...Option) (*Repository, error) {
	r := &Repository{
		records: records,
		codec:   record.Codec{Body: body},
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	if body == model.BodyFile && r.content == nil {
		return nil, errNoContentStore
	}

	return r, nil
}

// Create stores a new article under a fresh id. It never checks for an
// existing record.
func (r *Repository) Create(ctx context.Context, in model.ArticleInput) (*model.Created, error) {
	if r.codec.Body == model.BodyFile && in.File == "" {
		return nil, &MissingParameterError{Name: "file"}
	}

	id := r.newID()
	creationDate := r.now().Format(model.CreationDateLayout)

	if err := r.records.Put(ctx, r.codec.Encode(in, id, creationDate)); err != nil {
		return nil, fmt.Errorf("save article record %s: %w", id, err)
	}

	if r.codec.Body == model.BodyFile {
		if err := r.content.Store(ctx, in.File, id); err != nil {
			return nil, fmt.Errorf("save article file %s: %w", id, err)
		}
	}

	return &model.Created{ArticleID: id}, nil
}

// Get reads one article. An unknown id fails with *record.MissingFieldError,
// the same as a record missing its id attribute.
func (r *Repository) Get(ctx context.Context, id string) (*model.Article, error) {
	rec, err := r.records.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %s: %w", id, err)
	}

	a, err := r.codec.Decode(rec)
	if err != nil {
		return nil, fmt.Errorf("decode article %s: %w", id, err)
	}

	return a, nil
}

// Random returns up to SampleSize articles in store scan order. Despite the
// name it is not a statistical sample.
func (r *Repository) Random(ctx context.Context) ([]*model.Article, error) {
	recs, err := r.records.Scan(ctx, SampleSize)
	if err != nil {
		return nil, fmt.Errorf("scan articles: %w", err)
	}

	articles := make([]*model.Article, 0, len(recs))
	for _, rec := range recs {
		a, err := r.codec.Decode(rec)
		if err != nil {
			return nil, fmt.Errorf("decode scanned article: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, nil
}
