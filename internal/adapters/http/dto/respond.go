package dto

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// A request deadline expiring anywhere below the handler maps to 504; unknown
// errors map to 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, "request timed out")

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, NewErrorResponse(ErrorCodeUnauthorized, err.Error())

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, err.Error())

	case domain.IsStorage(err):
		// Driver messages can carry DSNs and query text; keep them in logs.
		return http.StatusBadGateway, NewErrorResponse(ErrorCodeStorage, "storage backend error")

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, "service temporarily unavailable")

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

// GetTraceID returns the identifier echoed in error envelopes: the
// OpenTelemetry trace ID when a span is recording, then a "trace_id" value
// on the gin context, then the X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	if v, ok := c.Get("trace_id"); ok {
		s, _ := v.(string)

		return s
	}

	return c.GetHeader("X-Request-ID")
}

// HandleError writes the error response for err, logging server-side failures.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	logServerError(c, status, err, errResp.TraceID)

	c.JSON(status, errResp)
}

// AbortWithError aborts the request chain and writes an error response.
// Use this in middleware when you want to stop further processing.
func AbortWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	logServerError(c, status, err, errResp.TraceID)

	c.AbortWithStatusJSON(status, errResp)
}

// RespondWithErrorCode writes an error response with a specific error code.
// Use this for adapter-level errors that don't originate from domain errors.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	c.JSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// RespondWithBindingError writes a 400 response for a request that failed
// binding or struct validation, with field details when available.
func RespondWithBindingError(c *gin.Context, err error) {
	if IsValidationError(err) {
		c.JSON(http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation,
			"request validation failed",
			ValidationErrors(err),
		).WithTraceID(GetTraceID(c)))

		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		RespondWithErrorCode(c, ErrorCodePayloadTooLarge, "request body too large")

		return
	}

	RespondWithErrorCode(c, ErrorCodeBadRequest, "malformed request body")
}

func logServerError(c *gin.Context, status int, err error, traceID string) {
	if status < http.StatusInternalServerError {
		return
	}

	logging.FromContext(c.Request.Context()).Error("request failed",
		"status", status,
		"error", err.Error(),
		"trace_id", traceID,
	)
}
