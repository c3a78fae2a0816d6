// Package dto holds the JSON shapes exchanged over HTTP and the helpers
// that bind, validate and answer with them.
package dto

import "net/http"

// ErrorResponse is the envelope of every non-2xx response.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail is the machine and human readable part of an ErrorResponse.
// Details carries per-field messages for validation failures.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes. Domain failures map onto the first group; the rest are
// raised by the HTTP layer itself.
const (
	ErrorCodeNotFound     = "NOT_FOUND"
	ErrorCodeConflict     = "CONFLICT"
	ErrorCodeValidation   = "VALIDATION_ERROR"
	ErrorCodeForbidden    = "FORBIDDEN"
	ErrorCodeUnauthorized = "UNAUTHORIZED"
	ErrorCodeUnavailable  = "SERVICE_UNAVAILABLE"
	ErrorCodeStorage      = "STORAGE_ERROR"
	ErrorCodeInternal     = "INTERNAL_ERROR"

	ErrorCodeTimeout         = "TIMEOUT"
	ErrorCodeBadRequest      = "BAD_REQUEST"
	ErrorCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

var statusByCode = map[string]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeBadRequest:      http.StatusBadRequest,
	ErrorCodeForbidden:       http.StatusForbidden,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeStorage:         http.StatusBadGateway,
	ErrorCodeTimeout:         http.StatusGatewayTimeout,
	ErrorCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
}

// NewErrorResponse creates an envelope without details.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// NewErrorResponseWithDetails creates an envelope with per-field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	resp := NewErrorResponse(code, message)
	resp.Error.Details = details

	return resp
}

// WithTraceID sets the trace identifier and returns e.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode returns the status for code, 500 for unknown codes.
func HTTPStatusFromCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
