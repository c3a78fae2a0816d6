package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// ContextKeyIdentity is the gin context key for the resolved caller.
const ContextKeyIdentity = "identity"

// Authenticator resolves request credentials into identities. It is
// satisfied by *auth.Authenticator.
type Authenticator interface {
	TokenFromRequest(r *http.Request) string
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
	RequireAdmin(ctx context.Context, token string) (*domain.Identity, error)
	RequireApprovedUser(ctx context.Context, token string) (*domain.Identity, error)
}

// RequireAdmin returns middleware that admits only admin identities.
// A missing or invalid credential is 401; a valid non-admin one is 403.
func RequireAdmin(a Authenticator) gin.HandlerFunc {
	return requireIdentity(a.RequireAdmin, a)
}

// RequireApprovedUser returns middleware that admits approved users and admins.
func RequireApprovedUser(a Authenticator) gin.HandlerFunc {
	return requireIdentity(a.RequireApprovedUser, a)
}

func requireIdentity(check func(context.Context, string) (*domain.Identity, error), a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := check(c.Request.Context(), a.TokenFromRequest(c.Request))
		if err != nil {
			dto.AbortWithError(c, err)
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

// OptionalIdentity returns middleware that resolves a credential when one
// is presented and otherwise lets the request through anonymously. A
// credential that fails to resolve is treated as absent; storage and
// provider failures still abort.
func OptionalIdentity(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := a.TokenFromRequest(c.Request)
		if token == "" {
			c.Next()
			return
		}

		identity, err := a.Authenticate(c.Request.Context(), token)

		switch {
		case err == nil:
			SetIdentity(c, identity)
		case domain.IsUnauthorized(err) || domain.IsForbidden(err):
			logging.FromContext(c.Request.Context()).Debug("ignoring unresolved credential", slog.Any("error", err))
		default:
			dto.AbortWithError(c, err)
			return
		}

		c.Next()
	}
}

// IdentityFrom returns the identity stored by an authentication middleware,
// or nil for anonymous requests.
func IdentityFrom(c *gin.Context) *domain.Identity {
	if v, ok := c.Get(ContextKeyIdentity); ok {
		if identity, ok := v.(*domain.Identity); ok {
			return identity
		}
	}

	return nil
}

// SetIdentity stores identity on the gin context and adds user_email to the
// request logger.
func SetIdentity(c *gin.Context, identity *domain.Identity) {
	c.Set(ContextKeyIdentity, identity)

	c.Request = c.Request.WithContext(logging.With(c.Request.Context(), slog.String("user_email", identity.Email)))
}
