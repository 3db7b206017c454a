package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/gravemap/internal/metrics"
)

func TestHealthCheck(t *testing.T) {
	srv := New(Config{Port: 0}, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{Port: 0, AllowedOrigins: []string{"*"}}, nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	m.SearchServed()
	srv := New(Config{}, m)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gravemap_searches_total")

	w = httptest.NewRecorder()
	New(Config{}, nil).Router().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code, "no metrics registered")
}

func TestCertManagerHostPolicy(t *testing.T) {
	srv := New(Config{Domain: "groby.example", CertDir: t.TempDir()}, nil)
	mgr := srv.certManager()

	ctx := context.Background()
	for _, host := range []string{"groby.example", "www.groby.example"} {
		assert.NoError(t, mgr.HostPolicy(ctx, host), host)
	}
	assert.Error(t, mgr.HostPolicy(ctx, "evil.example"))
}

func TestShutdownBeforeStart(t *testing.T) {
	assert.NoError(t, New(Config{}, nil).Shutdown(context.Background()))
}
