package router

import (
	"context"
	"fmt"
)

// Event is one inbound invocation as the gateway describes it.
type Event struct {
	Path                  string            `json:"path"`
	HTTPMethod            string            `json:"httpMethod"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Body                  string            `json:"body"`
}

// Query returns the named query string parameter, if present.
func (e Event) Query(name string) (string, bool) {
	v, ok := e.QueryStringParameters[name]

	return v, ok
}

// Handler serves one route.
type Handler interface {
	Handle(ctx context.Context, ev Event) (interface{}, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, ev Event) (interface{}, error)

func (f HandlerFunc) Handle(ctx context.Context, ev Event) (interface{}, error) {
	return f(ctx, ev)
}

// RouteNotFoundError reports an event no route answers.
type RouteNotFoundError struct {
	Path   string
	Method string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("no route for %s %s", e.Method, e.Path)
}
