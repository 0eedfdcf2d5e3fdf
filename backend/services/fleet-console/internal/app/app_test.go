package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gestaocombustivel/backend/services/fleet-console/internal/auth"
	"gestaocombustivel/backend/services/fleet-console/internal/config"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/Usuario/autenticar" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok1","usuario":{"nome":"Ana","tipoUsuario":"gestor","empresaId":"7"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSessionSurvivesRestartWithFileBackend(t *testing.T) {
	ctx := context.Background()
	upstream := newUpstream(t)
	cfg := &config.Config{
		API:     config.APIConfig{BaseURL: upstream.URL},
		Session: config.SessionConfig{Backend: config.BackendFile, Dir: t.TempDir()},
	}

	first, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, auth.StateAnonymous, first.Controller().State())
	require.NoError(t, first.Controller().Login(ctx, "a@b.com", "pw"))
	first.Close()

	second, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, auth.StateAuthenticated, second.Controller().State())
	assert.Equal(t, "7", second.Controller().Session().User.CompanyID.String())

	require.NoError(t, second.Controller().Logout(ctx))

	third, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer third.Close()
	assert.Equal(t, auth.StateAnonymous, third.Controller().State())
}

func TestHandlerServesHealthAndGuardsRoutes(t *testing.T) {
	upstream := newUpstream(t)
	cfg := &config.Config{
		API:     config.APIConfig{BaseURL: upstream.URL},
		Session: config.SessionConfig{Backend: config.BackendMemory},
	}
	application, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer application.Close()

	h := application.Handler()
	local := func(method, path string) *http.Request {
		req := httptest.NewRequest(method, path, nil)
		req.Host = "127.0.0.1:8787"
		return req
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, local(http.MethodGet, "/health"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, local(http.MethodGet, "/drivers"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandlerHonoursConfiguredOrigins(t *testing.T) {
	upstream := newUpstream(t)
	cfg := &config.Config{
		API:     config.APIConfig{BaseURL: upstream.URL},
		Session: config.SessionConfig{Backend: config.BackendMemory},
	}
	cfg.Gateway.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.Gateway.AllowedHosts = []string{"console.lan"}
	application, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer application.Close()
	h := application.Handler()

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Host = "console.lan:8787"
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/session/logout", nil)
	req.Host = "console.lan:8787"
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUnknownBackendFails(t *testing.T) {
	cfg := &config.Config{
		API:     config.APIConfig{BaseURL: "https://localhost:7105"},
		Session: config.SessionConfig{Backend: "etcd"},
	}
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unknown session backend")
}
