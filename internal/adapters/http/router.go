package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteboard/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the otel tracer and metrics.
	ServiceName string

	// Authenticator resolves request credentials for guarded routes.
	Authenticator middleware.Authenticator

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// API handlers. A nil handler leaves its routes unregistered.
	QuoteHandler   *handlers.QuoteHandler
	UserHandler    *handlers.UserHandler
	SessionHandler *handlers.SessionHandler
	AdminHandler   *handlers.AdminHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout - request deadline on /api/v1
//
// Route groups:
//   - /-/ (internal): Health endpoints, no auth required
//   - /api/v1/ (public API): quotes, registration and sessions
//   - /api/v1/admin: moderation, admin only
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)

	// Register health endpoints (no auth, no timeout for probes)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers business API routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg, cfg.Authenticator)
	}

	if cfg.UserHandler != nil {
		cfg.UserHandler.RegisterUserRoutes(rg)
	}

	if cfg.SessionHandler != nil {
		cfg.SessionHandler.RegisterSessionRoutes(rg)
	}

	if cfg.AdminHandler != nil {
		cfg.AdminHandler.RegisterAdminRoutes(rg, cfg.Authenticator)
	}
}
