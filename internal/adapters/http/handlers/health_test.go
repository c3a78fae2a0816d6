package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteboard/internal/ports"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string { return s.name }

func (s stubChecker) Check(context.Context) error { return s.err }

func newHealthEngine(t *testing.T, register func(r *ports.DefaultHealthRegistry)) *gin.Engine {
	t.Helper()

	registry := ports.NewHealthRegistry()
	if register != nil {
		register(registry)
	}

	engine := gin.New()
	NewHealthHandler(registry, NewBuildInfo("0.1.0", "abc123", "2026-01-15T10:00:00Z")).
		RegisterHealthRoutesOnEngine(engine)

	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))

	return w
}

func TestHealthHandler_Liveness(t *testing.T) {
	engine := newHealthEngine(t, func(r *ports.DefaultHealthRegistry) {
		require.NoError(t, r.Register(stubChecker{name: "sqlstore", err: errors.New("down")}))
	})

	w := get(engine, "/-/live")

	assert.Equal(t, http.StatusOK, w.Code, "liveness ignores dependencies")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		store      error
		jwks       error
		wantCode   int
		wantStatus string
	}{
		{name: "all healthy", wantCode: http.StatusOK, wantStatus: "healthy"},
		{name: "identity provider down", jwks: errors.New("circuit breaker open"), wantCode: http.StatusOK, wantStatus: "degraded"},
		{name: "store down", store: errors.New("connection refused"), wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy"},
		{name: "both down", store: errors.New("x"), jwks: errors.New("y"), wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newHealthEngine(t, func(r *ports.DefaultHealthRegistry) {
				require.NoError(t, r.Register(stubChecker{name: "sqlstore", err: tt.store}))
				require.NoError(t, r.Register(stubChecker{name: "jwks", err: tt.jwks}, ports.NonCritical()))
			})

			w := get(engine, "/-/ready")
			assert.Equal(t, tt.wantCode, w.Code)

			var body struct {
				Status string                        `json:"status"`
				Checks map[string]*ports.CheckResult `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

			assert.Equal(t, tt.wantStatus, body.Status)
			require.Contains(t, body.Checks, "sqlstore")
			require.Contains(t, body.Checks, "jwks")
			assert.True(t, body.Checks["sqlstore"].Critical)
			assert.False(t, body.Checks["jwks"].Critical)

			if tt.jwks != nil {
				assert.Equal(t, tt.jwks.Error(), body.Checks["jwks"].Message)
			}
		})
	}
}

func TestHealthHandler_ReadinessWithoutChecks(t *testing.T) {
	w := get(newHealthEngine(t, nil), "/-/ready")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestHealthHandler_BuildInfo(t *testing.T) {
	w := get(newHealthEngine(t, nil), "/-/build")
	require.Equal(t, http.StatusOK, w.Code)

	var info BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "0.1.0", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestHealthHandler_Metrics(t *testing.T) {
	w := get(newHealthEngine(t, nil), "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
