package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// slowQueryThreshold marks statements logged at warn level.
const slowQueryThreshold = 200 * time.Millisecond

// slogLogger routes gorm statements into the request-scoped slog logger.
type slogLogger struct {
	level gormlogger.LogLevel
}

var (
	_ gormlogger.Interface = (*slogLogger)(nil)
	_ gorm.ParamsFilter    = (*slogLogger)(nil)
)

func newSlogLogger(level string) *slogLogger {
	return &slogLogger{level: parseGormLevel(level)}
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (l *slogLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &slogLogger{level: level}
}

func (l *slogLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		logging.FromContext(ctx).InfoContext(ctx, fmt.Sprintf(msg, args...), slog.String("component", "gorm"))
	}
}

func (l *slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		logging.FromContext(ctx).WarnContext(ctx, fmt.Sprintf(msg, args...), slog.String("component", "gorm"))
	}
}

func (l *slogLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		logging.FromContext(ctx).ErrorContext(ctx, fmt.Sprintf(msg, args...), slog.String("component", "gorm"))
	}
}

// ParamsFilter drops bound values before gorm renders a statement for
// Trace, so logged SQL keeps its placeholders and never carries password
// hashes or quote content.
func (l *slogLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

// Trace logs one executed statement. Not-found and duplicate-key results are
// expected control flow for the stores and stay at debug level.
func (l *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	logger := logging.FromContext(ctx)
	attrs := []any{
		slog.String("component", "gorm"),
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}

	switch {
	case err != nil && l.level >= gormlogger.Error && !isExpected(err):
		logger.ErrorContext(ctx, "sql statement failed", append(attrs, slog.String("error", err.Error()))...)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		logger.WarnContext(ctx, "slow sql statement", attrs...)
	case l.level >= gormlogger.Info:
		logger.DebugContext(ctx, "sql statement", attrs...)
	}
}

func isExpected(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey)
}
