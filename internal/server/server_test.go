package server_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobilebazar/internal/config"
	"mobilebazar/internal/metrics"
	"mobilebazar/internal/server"
	"mobilebazar/internal/store/memstore"
)

func newDeps() server.Deps {
	return server.Deps{
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Store:  memstore.New(),
	}
}

func TestNew_RateLimit(t *testing.T) {
	cfg := config.Config{
		CORSAllowOrigins: "*",
		RateLimitMax:     2,
		RateLimitWindow:  time.Minute,
	}
	app := server.New(cfg, newDeps())

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"request_id"`)
}

func TestNew_MetricsEndpoint(t *testing.T) {
	deps := newDeps()
	deps.Metrics = metrics.NewRegistry()
	app := server.New(config.Config{CORSAllowOrigins: "*"}, deps)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/review", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bazar_http_requests_total{method="GET",route="/review",status="200"} 1`)
}

func TestNew_WithoutMetrics(t *testing.T) {
	app := server.New(config.Config{CORSAllowOrigins: "*"}, newDeps())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNew_Headers(t *testing.T) {
	app := server.New(config.Config{CORSAllowOrigins: "https://bazar.example"}, newDeps())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://bazar.example")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "https://bazar.example", resp.Header.Get("Access-Control-Allow-Origin"))
}
