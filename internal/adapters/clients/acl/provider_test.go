package acl

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteboard/internal/adapters/clients"
	"github.com/jsamuelsen/quoteboard/internal/domain"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestUnavailable(t *testing.T) {
	tests := []struct {
		name        string
		resp        *http.Response
		clientErr   error
		wantMessage string
	}{
		{name: "circuit open", clientErr: clients.ErrCircuitOpen, wantMessage: "circuit breaker open during fetch signing keys"},
		{name: "retries exhausted", clientErr: errors.Join(clients.ErrMaxRetriesExceeded, errors.New("eof")), wantMessage: "max retries exceeded"},
		{name: "transport error", clientErr: errors.New("connection refused"), wantMessage: "fetch signing keys failed: connection refused"},
		{name: "no response", wantMessage: "no response received"},
		{name: "not found", resp: response(http.StatusNotFound, ""), wantMessage: "key set not found"},
		{name: "forbidden", resp: response(http.StatusForbidden, "denied"), wantMessage: "key set access denied"},
		{name: "rate limited", resp: response(http.StatusTooManyRequests, "not json"), wantMessage: "rate limit exceeded"},
		{name: "other status", resp: response(http.StatusTeapot, ""), wantMessage: "fetch signing keys failed with status 418"},
		{
			name:        "oauth error body",
			resp:        response(http.StatusUnauthorized, `{"error":"invalid_client","error_description":"client disabled"}`),
			wantMessage: "client disabled",
		},
		{
			name:        "oauth error without description",
			resp:        response(http.StatusBadRequest, `{"error":"invalid_request"}`),
			wantMessage: "invalid_request",
		},
		{
			name:        "flat error body",
			resp:        response(http.StatusBadGateway, `{"code":"UPSTREAM","message":"upstream down"}`),
			wantMessage: "upstream down",
		},
		{name: "empty error object", resp: response(http.StatusNotFound, "{}"), wantMessage: "key set not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := unavailable(tt.resp, tt.clientErr, KeySetServiceName, "fetch signing keys")

			require.Error(t, err)
			assert.True(t, domain.IsUnavailable(err))
			assert.Contains(t, err.Error(), `"jwks"`)
			assert.Contains(t, err.Error(), tt.wantMessage)
		})
	}
}

func TestGetJSON(t *testing.T) {
	type document struct {
		Keys []string `json:"keys"`
	}

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		want        []string
		wantMessage string
	}{
		{
			name: "decodes the body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"keys":["a","b"]}`))
			},
			want: []string{"a", "b"},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			wantMessage: "decoding response",
		},
		{
			name: "oversized body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"keys":["` + strings.Repeat("k", maxDocumentBytes) + `"]}`))
			},
			wantMessage: "larger than",
		},
		{
			name: "error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantMessage: "key set not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newKeySetServer(t, tt.handler)

			got, err := getJSON[document](context.Background(), c.client, KeySetServiceName, "", "fetch")
			if tt.wantMessage != "" {
				require.Error(t, err)
				assert.True(t, domain.IsUnavailable(err))
				assert.Contains(t, err.Error(), tt.wantMessage)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Keys)
		})
	}
}
