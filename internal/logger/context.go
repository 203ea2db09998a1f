package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context. The HTTP middleware and
// the SDK client use this to carry a request-scoped logger (request id
// attached) down to the ranking pipelines.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts the logger stored by ContextWithLogger.
// Returns zap.NewNop() if none was stored, so pipeline call sites can log
// unconditionally.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
