package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteboard/internal/app/auth"
)

// DefaultSessionTTL is the lifetime of the session cookie.
const DefaultSessionTTL = 12 * time.Hour

// SessionConfig controls the session cookie.
type SessionConfig struct {
	// Secure marks the cookie HTTPS-only.
	Secure bool

	// TTL is the cookie lifetime. Zero uses DefaultSessionTTL.
	TTL time.Duration
}

// SessionHandler logs callers in and out with an httpOnly cookie carrying
// the encoded credential.
type SessionHandler struct {
	authn *auth.Authenticator
	cfg   SessionConfig
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(authn *auth.Authenticator, cfg SessionConfig) *SessionHandler {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}

	return &SessionHandler{authn: authn, cfg: cfg}
}

// Login handles POST /api/v1/session
// Resolves the submitted credential and stores it in the session cookie.
//
// @Summary Log in
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "Credentials"
// @Success 200 {object} dto.IdentityResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/v1/session [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.SessionRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	cred := auth.NewCredential(req.Email, req.Password, req.Role)
	token := cred.Encode()

	identity, err := h.authn.Resolver().ResolveCredential(c.Request.Context(), cred, token)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.setCookie(c, token, int(h.cfg.TTL.Seconds()))
	middleware.SetIdentity(c, identity)

	c.JSON(http.StatusOK, dto.NewIdentityResponse(identity))
}

// Current handles GET /api/v1/session
func (h *SessionHandler) Current(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeUnauthorized, "authentication required")
		return
	}

	c.JSON(http.StatusOK, dto.NewIdentityResponse(identity))
}

// Logout handles DELETE /api/v1/session
func (h *SessionHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.authn.CookieName(), value, maxAge, "/", "", h.cfg.Secure, true)
}

// RegisterSessionRoutes registers the session routes.
func (h *SessionHandler) RegisterSessionRoutes(rg *gin.RouterGroup) {
	session := rg.Group("/session")
	session.POST("", h.Login)
	session.GET("", middleware.RequireApprovedUser(h.authn), h.Current)
	session.DELETE("", h.Logout)
}
