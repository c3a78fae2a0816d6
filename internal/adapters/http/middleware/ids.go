// Package middleware provides the gin middleware chain: request and
// correlation IDs, access logging, panic recovery, deadlines and
// credential resolution.
package middleware

import (
	"context"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

const (
	// HeaderRequestID identifies a single HTTP request.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID identifies a chain of requests across services.
	HeaderCorrelationID = "X-Correlation-ID"
)

type contextKey int

const (
	ctxKeyRequestID contextKey = iota
	ctxKeyCorrelationID
)

// validID bounds inbound IDs before they are echoed and logged.
var validID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// RequestID adopts the caller's X-Request-ID, or generates a UUID when it
// is missing or malformed. The ID is echoed in the response and attached
// to the request context and its logger.
func RequestID() gin.HandlerFunc {
	return idMiddleware(HeaderRequestID, func(ctx context.Context, id string) context.Context {
		return logging.WithRequestID(ContextWithRequestID(ctx, id), id)
	})
}

// CorrelationID is RequestID for X-Correlation-ID, which an upstream
// caller keeps stable across the requests of one transaction.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(HeaderCorrelationID, func(ctx context.Context, id string) context.Context {
		return logging.WithCorrelationID(ContextWithCorrelationID(ctx, id), id)
	})
}

func idMiddleware(header string, enrich func(context.Context, string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if !validID.MatchString(id) {
			id = uuid.NewString()
		}

		c.Header(header, id)
		c.Request = c.Request.WithContext(enrich(c.Request.Context(), id))

		c.Next()
	}
}

// RequestIDFromContext returns the request ID, or "" when unset.
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxKeyRequestID)
}

// CorrelationIDFromContext returns the correlation ID, or "" when unset.
func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxKeyCorrelationID)
}

// ContextWithRequestID stores a request ID for outbound propagation.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// ContextWithCorrelationID stores a correlation ID for outbound propagation.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelationID, id)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}
