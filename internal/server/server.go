// Package server exposes the dispatcher over plain HTTP for local runs.
// Every request, routed or not, is answered with the dispatcher's envelope.
package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/articleresponse"
	"github.com/SergeyParamoshkin/articles/internal/logging"
	"github.com/SergeyParamoshkin/articles/internal/router"
)

type Server struct {
	dispatcher  *router.Dispatcher
	sugarLogger *zap.SugaredLogger
}

func New(dispatcher *router.Dispatcher, logger *zap.SugaredLogger) *Server {
	return &Server{dispatcher: dispatcher, sugarLogger: logger}
}

// Router registers every dispatcher route on a chi router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("pong"))
		if err != nil {
			s.sugarLogger.Errorw(err.Error())
		}
	})

	for _, route := range router.Routes {
		r.Method(route.Method(), route.Path(), http.HandlerFunc(s.dispatch))
	}

	r.NotFound(s.dispatch)
	r.MethodNotAllowed(s.dispatch)

	return r
}

// Logger puts a request scoped logger on the request context.
func (s *Server) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.sugarLogger.With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(logging.WithLogger(r.Context(), logger)))
	})
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), s.sugarLogger)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Errorw("read request body", "error", err)
		write(w, articleresponse.InternalError(), logger)

		return
	}

	ev := router.Event{
		Path:       r.URL.Path,
		HTTPMethod: r.Method,
		Body:       string(body),
	}
	if q := r.URL.Query(); len(q) > 0 {
		ev.QueryStringParameters = make(map[string]string, len(q))
		for k := range q {
			ev.QueryStringParameters[k] = q.Get(k)
		}
	}

	write(w, s.dispatcher.Dispatch(r.Context(), ev), logger)
}

func write(w http.ResponseWriter, env articleresponse.Envelope, logger *zap.SugaredLogger) {
	for k, v := range env.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(env.StatusCode)

	if _, err := io.WriteString(w, env.Body); err != nil {
		logger.Errorw(err.Error())
	}
}
