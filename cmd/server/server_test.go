package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/pyscribe/server/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Port:            "0",
		Environment:     "test",
		StorageDriver:   config.DriverMemory,
		LLMProvider:     config.ProviderCatalog,
		TranslateRate:   "2-M",
		ShutdownTimeout: time.Second,
		UpstreamTimeout: time.Second,
	}
}

func newTestServer(t *testing.T, cfg *config.ServerConfig) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	return srv
}

func postTranslate(srv *Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(`{"prompt":"palindrome"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:4321"

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestServerWiresRoutes(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"llm":"catalog"`)

	w = postTranslate(srv)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasSuffix(w.Body.String(), "data: [DONE]\n\n"))
}

func TestServerRateLimitsTranslate(t *testing.T) {
	srv := newTestServer(t, testConfig())

	assert.Equal(t, http.StatusOK, postTranslate(srv).Code)
	assert.Equal(t, http.StatusOK, postTranslate(srv).Code)

	w := postTranslate(srv)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "too_many_requests")
}

func TestServerSetsCORSHeaders(t *testing.T) {
	srv := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "http://example.test")

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerRejectsBadRate(t *testing.T) {
	cfg := testConfig()
	cfg.TranslateRate = "lots"

	_, err := NewServer(cfg)

	assert.Error(t, err)
}

func TestServerUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StorageDriver = "cassandra"

	_, err := NewServer(cfg)

	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestServerTagsRequestID(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("X-Request-ID", "req-42")

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}
