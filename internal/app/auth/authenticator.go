package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// DefaultCookieName is the session cookie holding an encoded credential.
const DefaultCookieName = "admin_token"

// Authenticator extracts tokens from requests and enforces access levels.
type Authenticator struct {
	resolver   *Resolver
	cookieName string
}

// NewAuthenticator creates an authenticator. An empty cookieName uses
// DefaultCookieName.
func NewAuthenticator(resolver *Resolver, cookieName string) *Authenticator {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	return &Authenticator{resolver: resolver, cookieName: cookieName}
}

// CookieName returns the session cookie name.
func (a *Authenticator) CookieName() string {
	return a.cookieName
}

// Resolver returns the underlying credential resolver.
func (a *Authenticator) Resolver() *Resolver {
	return a.resolver
}

// TokenFromRequest returns the bearer token, falling back to the session
// cookie. The Authorization header wins when both are present.
func (a *Authenticator) TokenFromRequest(r *http.Request) string {
	if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
		return token
	}

	if cookie, err := r.Cookie(a.cookieName); err == nil {
		return cookie.Value
	}

	return ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// Authenticate resolves token without an access check.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.NewUnauthorizedError("missing bearer token")
	}

	return a.resolver.Resolve(ctx, token)
}

// RequireAdmin resolves token and requires an admin identity.
func (a *Authenticator) RequireAdmin(ctx context.Context, token string) (*domain.Identity, error) {
	identity, err := a.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin {
		return nil, domain.NewForbiddenError("admin access", "not an admin")
	}

	return identity, nil
}

// RequireApprovedUser resolves token and requires an approved identity.
// Admins always pass.
func (a *Authenticator) RequireApprovedUser(ctx context.Context, token string) (*domain.Identity, error) {
	identity, err := a.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if !identity.IsApproved() {
		return nil, domain.NewForbiddenError("user access", "account is pending approval")
	}

	return identity, nil
}
