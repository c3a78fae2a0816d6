package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tokenAuthenticator resolves bearer tokens from a fixed table.
type tokenAuthenticator map[string]*domain.Identity

func (a tokenAuthenticator) TokenFromRequest(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func (a tokenAuthenticator) Authenticate(_ context.Context, token string) (*domain.Identity, error) {
	if identity, ok := a[token]; ok && token != "" {
		return identity, nil
	}

	return nil, domain.NewUnauthorizedError("invalid or missing authentication")
}

func (a tokenAuthenticator) RequireAdmin(ctx context.Context, token string) (*domain.Identity, error) {
	identity, err := a.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin {
		return nil, domain.NewForbiddenError("admin", "admin rights required")
	}

	return identity, nil
}

func (a tokenAuthenticator) RequireApprovedUser(ctx context.Context, token string) (*domain.Identity, error) {
	identity, err := a.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if !identity.IsApproved() {
		return nil, domain.NewForbiddenError("submit", "account not approved")
	}

	return identity, nil
}

var (
	adminIdentity   = &domain.Identity{Email: "boss@x.com", DisplayName: "Boss", IsAdmin: true, Status: domain.UserStatusApproved}
	userIdentity    = &domain.Identity{Email: "jane@x.com", DisplayName: "Jane", Status: domain.UserStatusApproved}
	pendingIdentity = &domain.Identity{Email: "new@x.com", Status: domain.UserStatusPending}
)

func testAuthenticator() tokenAuthenticator {
	return tokenAuthenticator{
		"admin-token":   adminIdentity,
		"user-token":    userIdentity,
		"pending-token": pendingIdentity,
	}
}

// doRequest serves one request. body is JSON-encoded unless it is nil.
func doRequest(t *testing.T, router *gin.Engine, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))

	return v
}

func sampleQuote(id string, status domain.QuoteStatus) *domain.Quote {
	return &domain.Quote{
		ID:          id,
		Content:     "Stay hungry",
		ContentHash: "hash-" + id,
		Status:      status,
		Source:      "api",
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func ptr[T any](v T) *T {
	return &v
}
