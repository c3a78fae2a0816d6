package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// requestLogger returns the logger stored on ctx by the request middleware,
// or fallback when ctx carries none.
func requestLogger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := logging.LoggerFromContext(ctx); ok {
		return logger
	}

	return fallback
}
