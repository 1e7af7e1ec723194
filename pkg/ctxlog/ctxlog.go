// Package ctxlog carries a zap Logger through a Context so that
// request-scoped fields (index names, operation names, query fields)
// follow a call from the HTTP API down into the Elasticsearch gateway.
package ctxlog

import (
	"context"

	"go.uber.org/zap"
)

type loggerKeyType struct{}

var (
	// loggerKey is a unique key to embed a zap.Logger in a Context.
	loggerKey = loggerKeyType{}

	// nop logger to ensure GetLogger always returns something.
	nop = zap.NewNop()

	// L is an alias for GetLogger.
	L = GetLogger
)

// WithLogger embeds Logger in the given Context. Later the logger can be
// obtained by GetLogger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithFields adds the given fields to the Logger embedded in ctx.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	return WithLogger(ctx, GetLogger(ctx).With(fields...))
}

// WithName adds the given name to the Logger embedded in ctx.
func WithName(ctx context.Context, name string) context.Context {
	return WithLogger(ctx, GetLogger(ctx).Named(name))
}

// GetLogger either returns an embedded Logger from the context
// or a nop Logger if nothing is embedded.
func GetLogger(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return nop
}

// Detach returns a new background Context that carries the Logger
// embedded in ctx, but none of its deadlines or cancellation.
// It's used for work that must outlive the request that started it.
func Detach(ctx context.Context) context.Context {
	return WithLogger(context.Background(), GetLogger(ctx))
}
