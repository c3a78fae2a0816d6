package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// fakeAuthenticator resolves tokens from a fixed table.
type fakeAuthenticator struct {
	identities map[string]*domain.Identity
	err        error
}

func (f *fakeAuthenticator) TokenFromRequest(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*domain.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}

	if token == "" {
		return nil, domain.NewUnauthorizedError("missing credentials")
	}

	identity, ok := f.identities[token]
	if !ok {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	return identity, nil
}

func (f *fakeAuthenticator) RequireAdmin(ctx context.Context, token string) (*domain.Identity, error) {
	identity, err := f.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin {
		return nil, domain.NewForbiddenError("admin", "admin rights required")
	}

	return identity, nil
}

func (f *fakeAuthenticator) RequireApprovedUser(ctx context.Context, token string) (*domain.Identity, error) {
	identity, err := f.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if !identity.IsApproved() {
		return nil, domain.NewForbiddenError("user", "account not approved")
	}

	return identity, nil
}

func newFakeAuthenticator() *fakeAuthenticator {
	return &fakeAuthenticator{
		identities: map[string]*domain.Identity{
			"admin-token":   {Email: "boss@x.com", IsAdmin: true, Status: domain.UserStatusApproved},
			"user-token":    {Email: "jane@x.com", Status: domain.UserStatusApproved},
			"pending-token": {Email: "new@x.com", Status: domain.UserStatusPending},
		},
	}
}

func serveWithAuth(t *testing.T, mw gin.HandlerFunc, a *fakeAuthenticator, token string) (*httptest.ResponseRecorder, *domain.Identity) {
	t.Helper()

	var seen *domain.Identity

	router := gin.New()
	router.Use(mw)
	router.GET("/test", func(c *gin.Context) {
		seen = IdentityFrom(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w, seen
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantEmail  string
	}{
		{name: "admin passes", token: "admin-token", wantStatus: http.StatusOK, wantEmail: "boss@x.com"},
		{name: "missing credentials", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", token: "bogus", wantStatus: http.StatusUnauthorized},
		{name: "non-admin is forbidden", token: "user-token", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newFakeAuthenticator()
			w, seen := serveWithAuth(t, RequireAdmin(a), a, tt.token)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantEmail == "" {
				assert.Nil(t, seen)
				return
			}

			require.NotNil(t, seen)
			assert.Equal(t, tt.wantEmail, seen.Email)
		})
	}
}

func TestRequireApprovedUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "approved user passes", token: "user-token", wantStatus: http.StatusOK},
		{name: "admin passes", token: "admin-token", wantStatus: http.StatusOK},
		{name: "pending user is forbidden", token: "pending-token", wantStatus: http.StatusForbidden},
		{name: "missing credentials", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newFakeAuthenticator()
			w, _ := serveWithAuth(t, RequireApprovedUser(a), a, tt.token)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireAdmin_ProviderFailure(t *testing.T) {
	t.Parallel()

	a := newFakeAuthenticator()
	a.err = domain.NewUnavailableError("jwks", "connection refused")

	w, _ := serveWithAuth(t, RequireAdmin(a), a, "admin-token")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestOptionalIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		err        error
		wantStatus int
		wantEmail  string
	}{
		{name: "anonymous request passes", wantStatus: http.StatusOK},
		{name: "valid credential sets identity", token: "user-token", wantStatus: http.StatusOK, wantEmail: "jane@x.com"},
		{name: "invalid credential is ignored", token: "bogus", wantStatus: http.StatusOK},
		{
			name:       "storage failure aborts",
			token:      "user-token",
			err:        domain.NewStorageError("get user", errors.New("db down")),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newFakeAuthenticator()
			a.err = tt.err

			w, seen := serveWithAuth(t, OptionalIdentity(a), a, tt.token)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantEmail == "" {
				assert.Nil(t, seen)
				return
			}

			require.NotNil(t, seen)
			assert.Equal(t, tt.wantEmail, seen.Email)
		})
	}
}

func TestIdentityFrom(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, IdentityFrom(c))

	c.Set(ContextKeyIdentity, "not an identity")
	assert.Nil(t, IdentityFrom(c))

	identity := &domain.Identity{Email: "jane@x.com"}
	SetIdentity(c, identity)
	assert.Same(t, identity, IdentityFrom(c))
}
