package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// Logging returns the access log middleware. Each request gets a debug line
// on arrival and one line on completion whose level follows the status:
// error for 5xx, warn for 4xx. Probe routes under /-/ and skipPaths are not
// logged. logger seeds the request context when no earlier middleware did.
//
// The route template is logged instead of the raw path so that emails in
// admin URLs stay out of the access log.
func Logging(logger *slog.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if p := c.Request.URL.Path; skip[p] || strings.HasPrefix(p, "/-/") {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if _, ok := logging.LoggerFromContext(ctx); !ok && logger != nil {
			c.Request = c.Request.WithContext(logging.WithContext(ctx, logger))
		}

		start := time.Now()
		route := routeOf(c)

		logging.FromContext(c.Request.Context()).Debug("request started",
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		}

		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			attrs = append(attrs, slog.String("errors", errs.String()))
		}

		// Authentication runs inside c.Next and may have added user_email.
		logging.FromContext(c.Request.Context()).LogAttrs(c.Request.Context(), levelFor(status), "request completed", attrs...)
	}
}

// routeOf returns the matched route template, or "unmatched" for 404s that
// hit no route.
func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}

	return "unmatched"
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
