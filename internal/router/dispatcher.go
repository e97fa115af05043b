package router

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/articleresponse"
	"github.com/SergeyParamoshkin/articles/internal/logging"
	"github.com/SergeyParamoshkin/articles/internal/metrics"
)

// Handlers binds a handler to every route.
type Handlers struct {
	CreateArticle  Handler
	GetArticle     Handler
	RandomArticles Handler
}

func (h Handlers) lookup(r Route) Handler {
	switch r {
	case RouteCreateArticle:
		return h.CreateArticle
	case RouteGetArticle:
		return h.GetArticle
	case RouteRandomArticles:
		return h.RandomArticles
	default:
		return nil
	}
}

// Dispatcher routes events and folds every outcome into an Envelope.
// It keeps no state between invocations.
type Dispatcher struct {
	handlers Handlers
	logger   *zap.SugaredLogger
	metrics  *metrics.Recorder
}

type Option func(*Dispatcher)

// WithMetrics records every dispatched invocation on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(d *Dispatcher) {
		d.metrics = rec
	}
}

func NewDispatcher(handlers Handlers, logger *zap.SugaredLogger, opts ...Option) *Dispatcher {
	d := &Dispatcher{handlers: handlers, logger: logger}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Dispatch serves ev. Failures of any kind, including a missing route,
// come back as the generic 500 envelope and are only visible in the logs.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) articleresponse.Envelope {
	start := time.Now()
	route := Resolve(ev.Path, ev.HTTPMethod)

	env, err := d.serve(ctx, route, ev)
	if err != nil {
		logging.FromContext(ctx, d.logger).Errorw("invocation failed",
			"route", route.String(),
			"path", ev.Path,
			"method", ev.HTTPMethod,
			"error", err,
		)
		env = articleresponse.InternalError()
	}

	d.metrics.Observe(ctx, route.String(), env.StatusCode, time.Since(start))

	return env
}

func (d *Dispatcher) serve(ctx context.Context, route Route, ev Event) (env articleresponse.Envelope, err error) {
	h := d.handlers.lookup(route)
	if h == nil {
		return env, &RouteNotFoundError{Path: ev.Path, Method: ev.HTTPMethod}
	}

	defer func() {
		if rvr := recover(); rvr != nil {
			err = fmt.Errorf("handler panic: %v", rvr)
		}
	}()

	result, err := h.Handle(ctx, ev)
	if err != nil {
		return env, err
	}

	env, err = articleresponse.OK(result)
	if err != nil {
		return env, fmt.Errorf("marshal response: %w", err)
	}

	return env, nil
}
