package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quoteboard/internal/adapters/clients"
	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// maxDocumentBytes caps provider responses. Real key sets are a few KiB.
const maxDocumentBytes = 1 << 20

// providerError is an identity provider's error body. OAuth 2.0 servers
// send error/error_description; others a flat code/message pair.
type providerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Code             string `json:"code"`
	Message          string `json:"message"`
}

// message returns the most descriptive text present, or "".
func (e *providerError) message() string {
	for _, s := range []string{e.ErrorDescription, e.Message, e.Error, e.Code} {
		if s != "" {
			return s
		}
	}

	return ""
}

// getJSON fetches path from the provider and decodes the body into a T.
// Every failure, transport or HTTP or decoding, is a domain.ErrUnavailable
// naming service and op.
func getJSON[T any](ctx context.Context, client *clients.Client, service, path, op string) (*T, error) {
	resp, err := client.Get(ctx, path)
	if err != nil {
		return nil, unavailable(nil, err, service, op)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, unavailable(resp, nil, service, op)
	}

	body := io.LimitReader(resp.Body, maxDocumentBytes+1)

	var out T
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, domain.NewUnavailableError(service, fmt.Sprintf("%s: response truncated or larger than %d bytes", op, maxDocumentBytes))
		}

		return nil, domain.NewUnavailableError(service, fmt.Sprintf("%s: decoding response: %v", op, err))
	}

	return &out, nil
}

// unavailable maps a failed provider call to domain.ErrUnavailable. Either
// clientErr is set, for transport failures, or resp holds a non-2xx answer.
func unavailable(resp *http.Response, clientErr error, service, op string) error {
	switch {
	case errors.Is(clientErr, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(service, "circuit breaker open during "+op)
	case errors.Is(clientErr, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(service, "max retries exceeded during "+op)
	case clientErr != nil:
		return domain.NewUnavailableError(service, fmt.Sprintf("%s failed: %v", op, clientErr))
	case resp == nil:
		return domain.NewUnavailableError(service, "no response received")
	}

	var body providerError
	if resp.Body != nil && json.NewDecoder(io.LimitReader(resp.Body, maxDocumentBytes)).Decode(&body) == nil {
		if msg := body.message(); msg != "" {
			return domain.NewUnavailableError(service, msg)
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.NewUnavailableError(service, "key set not found")
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewUnavailableError(service, "key set access denied")
	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(service, "rate limit exceeded")
	default:
		return domain.NewUnavailableError(service, fmt.Sprintf("%s failed with status %d", op, resp.StatusCode))
	}
}
