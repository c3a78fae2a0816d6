//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/jsamuelsen/quoteboard/internal/adapters/http"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteboard/internal/adapters/storage/sqlstore"
	"github.com/jsamuelsen/quoteboard/internal/app"
	"github.com/jsamuelsen/quoteboard/internal/app/auth"
	"github.com/jsamuelsen/quoteboard/internal/domain/contenthash"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// adminToken is the bearer credential of the static admin every test app
// starts with.
const adminToken = "boss@x.com:hunter2:admin"

func init() {
	gin.SetMode(gin.TestMode)
}

// appOptions tweaks the in-process application.
type appOptions struct {
	allowAnonymous bool
	verifier       ports.TokenVerifier
	adminEmails    []string
}

// newTestApp wires the full service on an in-memory SQLite database and
// serves it from an httptest server.
func newTestApp(t testing.TB, opts appOptions) *httptest.Server {
	t.Helper()

	db, err := sqlstore.Open(sqlstore.Config{
		Driver:   sqlstore.DriverSQLite,
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	quotes := sqlstore.NewQuoteStore(db, contenthash.Hash)
	users := sqlstore.NewUserStore(db)

	ctx := context.Background()
	require.NoError(t, quotes.EnsureIndexes(ctx))
	require.NoError(t, users.EnsureIndexes(ctx))

	static, err := auth.NewStaticAdmins(auth.StaticAdminConfig{
		Credentials: []string{"boss@x.com:hunter2"},
		Name:        "Boss",
	})
	require.NoError(t, err)

	resolver := auth.NewResolver(auth.ResolverConfig{AdminEmails: opts.adminEmails}, static, users, opts.verifier)
	authenticator := auth.NewAuthenticator(resolver, "admin_token")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{Store: quotes, Logger: logger})
	userService := app.NewUserService(app.UserServiceConfig{Store: users, Logger: logger})
	statsService := app.NewStatsService(quotes, users)

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(db))

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:         logger,
		ServiceName:    "quoteboard-test",
		Authenticator:  authenticator,
		HealthHandler:  handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")),
		QuoteHandler:   handlers.NewQuoteHandler(quoteService, opts.allowAnonymous),
		UserHandler:    handlers.NewUserHandler(userService),
		SessionHandler: handlers.NewSessionHandler(authenticator, handlers.SessionConfig{TTL: time.Hour}),
		AdminHandler:   handlers.NewAdminHandler(quoteService, userService, statsService),
		Timeout:        5 * time.Second,
	})

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return server
}

// apiResponse is a fully read response.
type apiResponse struct {
	status int
	body   []byte
	header http.Header
}

// call sends a request to the test app. body is JSON encoded when not nil.
func call(t testing.TB, server *httptest.Server, method, path, token string, body any) apiResponse {
	t.Helper()

	var reader io.Reader = http.NoBody

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, server.URL+path, reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return apiResponse{status: resp.StatusCode, body: raw, header: resp.Header}
}

// quoteJSON is the quote representation returned by the API.
type quoteJSON struct {
	ID          string  `json:"id"`
	Content     string  `json:"content"`
	ContentHash string  `json:"contentHash"`
	Status      string  `json:"status"`
	SubmittedBy *string `json:"submittedBy"`
	VerifiedBy  *string `json:"verifiedBy"`
	Likes       int64   `json:"likes"`
}

func decode[T any](t testing.TB, r apiResponse) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(r.body, &v), "body: %s", r.body)

	return v
}

// registerApprovedUser registers an account, approves it as the static
// admin and returns its bearer credential.
func registerApprovedUser(t testing.TB, server *httptest.Server, email, password string) string {
	t.Helper()

	resp := call(t, server, http.MethodPost, "/api/v1/users", "", map[string]string{
		"email":       email,
		"password":    password,
		"displayName": "Jane",
	})
	require.Equal(t, http.StatusCreated, resp.status, "body: %s", resp.body)

	resp = call(t, server, http.MethodPost, "/api/v1/admin/users/"+email+"/approve", adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.status, "body: %s", resp.body)

	return email + ":" + password + ":user"
}
