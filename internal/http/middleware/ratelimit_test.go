package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/straye-as/offer-tracker/internal/config"
	"github.com/straye-as/offer-tracker/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func limitedHandler(cfg *config.RateLimitConfig, calls *int) http.Handler {
	rl := middleware.NewRateLimiter(cfg, zap.NewNop())
	return rl.LimitByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	}))
}

func get(handler http.Handler, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Disabled(t *testing.T) {
	calls := 0
	handler := limitedHandler(&config.RateLimitConfig{Enabled: false, RequestsPerMinute: 5}, &calls)

	for i := 0; i < 100; i++ {
		assert.Equal(t, http.StatusOK, get(handler, "/api/v1/offers", "192.168.1.1:12345").Code)
	}
	assert.Equal(t, 100, calls)
}

func TestRateLimiter_LimitsPerIP(t *testing.T) {
	calls := 0
	handler := limitedHandler(&config.RateLimitConfig{Enabled: true, RequestsPerMinute: 3}, &calls)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(handler, "/api/v1/offers", "10.0.0.1:1000").Code)
	}

	w := get(handler, "/api/v1/offers", "10.0.0.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limited")

	// another client is unaffected
	assert.Equal(t, http.StatusOK, get(handler, "/api/v1/offers", "10.0.0.2:1000").Code)
	assert.Equal(t, 4, calls)
}

func TestRateLimiter_Whitelists(t *testing.T) {
	calls := 0
	handler := limitedHandler(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{"127.0.0.1"},
		WhitelistPaths:    []string{"/health", "/swagger/*"},
	}, &calls)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, get(handler, "/api/v1/offers", "127.0.0.1:1").Code)
		assert.Equal(t, http.StatusOK, get(handler, "/health", "10.0.0.9:1").Code)
		assert.Equal(t, http.StatusOK, get(handler, "/swagger/index.html", "10.0.0.9:1").Code)
	}
	assert.Equal(t, 30, calls)
}

func TestRateLimiter_UsesForwardedFor(t *testing.T) {
	calls := 0
	handler := limitedHandler(&config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1}, &calls)

	send := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/offers", nil)
		req.RemoteAddr = "10.0.0.1:1"
		req.Header.Set("X-Forwarded-For", xff)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.5, 10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("203.0.113.6"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.5"))
}
