package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type loggerKey struct{}

// fallback is returned by FromContext when a context carries no logger.
var fallback atomic.Pointer[slog.Logger]

func init() {
	fallback.Store(slog.Default())
}

// SetDefault installs logger as the fallback for contexts without one and
// as the slog package default.
func SetDefault(logger *slog.Logger) {
	fallback.Store(logger)
	slog.SetDefault(logger)
}

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger carried by ctx, if any.
func LoggerFromContext(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}

	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)

	return logger, ok
}

// FromContext returns the logger carried by ctx, or the default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := LoggerFromContext(ctx); ok {
		return logger
	}

	return fallback.Load()
}

// With returns ctx with its logger extended by args, in slog.Logger.With form.
func With(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}

// WithRequestID tags every later log line on ctx with request_id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return With(ctx, slog.String("request_id", id))
}

// WithCorrelationID tags every later log line on ctx with correlation_id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return With(ctx, slog.String("correlation_id", id))
}
