package logger

import "context"

type contextKey string

const loggerKey contextKey = "logger"

// WithContext stores a request-scoped logger in ctx.
func WithContext(ctx context.Context, l ZapLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the request-scoped logger or fallback when none is set.
func FromContext(ctx context.Context, fallback ZapLogger) ZapLogger {
	if l, ok := ctx.Value(loggerKey).(ZapLogger); ok {
		return l
	}
	return fallback
}
