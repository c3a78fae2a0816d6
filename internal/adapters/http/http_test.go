package http

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteboard/internal/app"
	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/mocks"
	"github.com/jsamuelsen/quoteboard/internal/platform/config"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServerConfig(maxBody int64) *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: maxBody,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer_AddrBeforeStart(t *testing.T) {
	cfg := testServerConfig(1 << 20)
	cfg.Host = "0.0.0.0"
	cfg.Port = 3000

	srv := New(cfg, discardLogger())

	assert.Equal(t, "0.0.0.0:3000", srv.Addr())
	assert.Equal(t, 5*time.Second, srv.srv.ReadHeaderTimeout)
	assert.NotNil(t, srv.Engine())
}

func TestServer_StartServeShutdown(t *testing.T) {
	srv := New(testServerConfig(1<<20), discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	errCh, err := srv.Start()
	require.NoError(t, err)
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr(), "port 0 resolves to the bound port")

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err, open := <-errCh:
		assert.False(t, open, "graceful shutdown reports no serve error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("serve goroutine did not exit")
	}
}

func TestServer_StartPortInUse(t *testing.T) {
	first := New(testServerConfig(1<<20), discardLogger())
	_, err := first.Start()
	require.NoError(t, err)

	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)

	cfg := testServerConfig(1 << 20)
	cfg.Port, _ = strconv.Atoi(port)

	_, err = New(cfg, discardLogger()).Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding")
}

// staticAuthenticator admits a single admin token.
type staticAuthenticator struct{}

func (staticAuthenticator) TokenFromRequest(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func (a staticAuthenticator) Authenticate(_ context.Context, token string) (*domain.Identity, error) {
	if token != "admin-token" {
		return nil, domain.NewUnauthorizedError("invalid or missing authentication")
	}

	return &domain.Identity{Email: "boss@x.com", IsAdmin: true, Status: domain.UserStatusApproved}, nil
}

func (a staticAuthenticator) RequireAdmin(ctx context.Context, token string) (*domain.Identity, error) {
	return a.Authenticate(ctx, token)
}

func (a staticAuthenticator) RequireApprovedUser(ctx context.Context, token string) (*domain.Identity, error) {
	return a.Authenticate(ctx, token)
}

var _ middleware.Authenticator = staticAuthenticator{}

// newTestRouter wires every handler over mock stores.
func newTestRouter(t *testing.T, timeout time.Duration) (*gin.Engine, *mocks.MockQuoteStore, *mocks.MockUserStore) {
	t.Helper()

	logger := discardLogger()
	quoteStore := mocks.NewMockQuoteStore(t)
	userStore := mocks.NewMockUserStore(t)

	quotes := app.NewQuoteService(app.QuoteServiceConfig{Store: quoteStore, Logger: logger})
	users := app.NewUserService(app.UserServiceConfig{Store: userStore, Logger: logger})

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		Logger:        logger,
		ServiceName:   "quoteboard-test",
		Authenticator: staticAuthenticator{},
		HealthHandler: handlers.NewHealthHandler(nil, handlers.BuildInfo{Version: "1.0.0"}),
		QuoteHandler:  handlers.NewQuoteHandler(quotes, false),
		UserHandler:   handlers.NewUserHandler(users),
		AdminHandler:  handlers.NewAdminHandler(quotes, users, app.NewStatsService(quoteStore, userStore)),
		Timeout:       timeout,
	})

	return engine, quoteStore, userStore
}

// TestSetupRouter tests that every API route is registered.
func TestSetupRouter(t *testing.T) {
	engine, _, _ := newTestRouter(t, DefaultRequestTimeout)

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /api/v1/quotes",
		"GET /api/v1/quotes/random",
		"GET /api/v1/quotes/latest",
		"GET /api/v1/quotes/:id",
		"POST /api/v1/quotes",
		"POST /api/v1/quotes/:id/like",
		"POST /api/v1/users",
		"GET /api/v1/admin/quotes",
		"POST /api/v1/admin/quotes/:id/approve",
		"POST /api/v1/admin/quotes/:id/reject",
		"PATCH /api/v1/admin/quotes/:id",
		"GET /api/v1/admin/users",
		"POST /api/v1/admin/users/:email/approve",
		"POST /api/v1/admin/users/:email/reject",
		"PUT /api/v1/admin/users/:email/admin",
		"DELETE /api/v1/admin/users/:email",
		"GET /api/v1/admin/stats",
	} {
		assert.True(t, registered[want], "route %s should be registered", want)
	}

	assert.False(t, registered["POST /api/v1/session"], "nil session handler registers no routes")
}

// TestSetupRouter_MiddlewareChain tests that requests pass through the
// global middleware before reaching handlers.
func TestSetupRouter_MiddlewareChain(t *testing.T) {
	engine, quoteStore, _ := newTestRouter(t, DefaultRequestTimeout)

	var hadDeadline bool

	quoteStore.EXPECT().RandomApproved(mock.Anything).RunAndReturn(func(ctx context.Context) (*domain.Quote, error) {
		_, hadDeadline = ctx.Deadline()
		return &domain.Quote{ID: "q-1", Status: domain.QuoteStatusApproved}, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/random", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(middleware.HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderCorrelationID))
	assert.True(t, hadDeadline, "store call should observe the request deadline")
}

// TestSetupRouterWithoutTimeout tests router setup with zero timeout.
func TestSetupRouterWithoutTimeout(t *testing.T) {
	engine, quoteStore, _ := newTestRouter(t, 0)

	var hadDeadline bool

	quoteStore.EXPECT().Latest(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, _ *domain.QuoteStatus) (*domain.Quote, error) {
			_, hadDeadline = ctx.Deadline()
			return nil, domain.NewNotFoundError("quote", "latest")
		})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotes/latest", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, hadDeadline)
}

// TestSetupRouter_AdminGuard tests that admin routes reject anonymous callers
// before touching the stores.
func TestSetupRouter_AdminGuard(t *testing.T) {
	engine, _, userStore := newTestRouter(t, DefaultRequestTimeout)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	pending := domain.UserStatusPending
	userStore.EXPECT().List(mock.Anything, ports.ListUsersParams{Status: &pending}).Return(nil, nil)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestSetupRouter_RecoversPanics tests that a panicking handler yields the
// standard error envelope.
func TestSetupRouter_RecoversPanics(t *testing.T) {
	engine, _, _ := newTestRouter(t, DefaultRequestTimeout)
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestLimitBody(t *testing.T) {
	srv := New(testServerConfig(64), discardLogger())
	srv.Engine().POST("/quotes", func(c *gin.Context) {
		var req struct {
			Content string `json:"content"`
		}

		if err := dto.BindAndValidate(c, &req); err != nil {
			dto.RespondWithBindingError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"length": len(req.Content)})
	})

	tests := []struct {
		name       string
		body       string
		chunked    bool
		wantStatus int
	}{
		{name: "under the limit", body: `{"content":"Brevity."}`, wantStatus: http.StatusCreated},
		{name: "declared length over the limit", body: `{"content":"` + strings.Repeat("a", 100) + `"}`, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "chunked body over the limit", body: `{"content":"` + strings.Repeat("a", 100) + `"}`, chunked: true, wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			if tt.chunked {
				req.ContentLength = -1
			}

			w := httptest.NewRecorder()
			srv.Engine().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusRequestEntityTooLarge {
				assert.Contains(t, w.Body.String(), dto.ErrorCodePayloadTooLarge)
			}
		})
	}
}
