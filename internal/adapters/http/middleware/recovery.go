package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// Recovery turns a handler panic into a logged stack trace and a 500
// envelope. It must be the first middleware so it covers the whole chain.
// Gin's own broken-pipe handling is kept; its default writer is silenced
// in favour of the structured log line.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		reqLogger, ok := logging.LoggerFromContext(c.Request.Context())
		if !ok {
			reqLogger = logger
		}

		traceID := dto.GetTraceID(c)

		reqLogger.Error("handler panicked",
			slog.Any("panic", recovered),
			slog.String("stack", string(debug.Stack())),
			slog.String("method", c.Request.Method),
			slog.String("route", routeOf(c)),
			slog.String("trace_id", traceID),
		)

		if c.Writer.Written() {
			c.Abort()
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred").WithTraceID(traceID))
	})
}
