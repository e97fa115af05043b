package logging

import (
	"context"

	"go.uber.org/zap"
)

type CtxKey int8

const (
	CtxKeyLogger CtxKey = iota
)

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, CtxKeyLogger, logger)
}

// FromContext returns the logger stored on ctx, or fallback.
func FromContext(ctx context.Context, fallback *zap.SugaredLogger) *zap.SugaredLogger {
	if logger, ok := ctx.Value(CtxKeyLogger).(*zap.SugaredLogger); ok && logger != nil {
		return logger
	}

	return fallback
}
