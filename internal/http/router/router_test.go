package router_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/straye-as/offer-tracker/internal/config"
	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/http/handler"
	"github.com/straye-as/offer-tracker/internal/http/middleware"
	"github.com/straye-as/offer-tracker/internal/http/router"
	"github.com/straye-as/offer-tracker/internal/service"
	"github.com/straye-as/offer-tracker/internal/storage"
	"github.com/straye-as/offer-tracker/internal/store"
	"github.com/straye-as/offer-tracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pingKV reports a configurable storage health
type pingKV struct {
	*storage.MemoryKV
	err error
}

func (p *pingKV) Ping(ctx context.Context) error {
	return p.err
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "test", Environment: "test", Locale: "es"},
		Server: config.ServerConfig{
			EnableSwagger: true,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		},
		Security: config.SecurityConfig{
			ContentSecurityPolicy: "default-src 'self'",
			FrameOptions:          "DENY",
			ContentTypeNosniff:    true,
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}
}

func setupHandler(t *testing.T, s *store.Store, kv storage.KV) http.Handler {
	t.Helper()
	cfg := testConfig()
	logger := zap.NewNop()
	prefs := service.NewPreferenceService(kv, logger)

	return router.NewRouter(
		cfg,
		logger,
		s,
		kv,
		middleware.NewRateLimiter(&cfg.RateLimit, logger),
		handler.NewClientHandler(service.NewClientService(s, domain.LocaleES, logger), logger),
		handler.NewOfferHandler(service.NewOfferService(s, domain.LocaleES, logger), logger),
		handler.NewDashboardHandler(service.NewDashboardService(s, prefs, domain.LocaleES, logger), prefs, logger),
	).Setup()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	kv := &pingKV{MemoryKV: storage.NewMemoryKV()}
	h := setupHandler(t, testutil.NewStore(t, kv), kv)

	w := get(h, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = get(h, "/health/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestRouter_ReadyReportsStorageFailure(t *testing.T) {
	kv := &pingKV{MemoryKV: storage.NewMemoryKV()}
	h := setupHandler(t, testutil.NewStore(t, kv), kv)
	kv.err = errors.New("connection refused")

	w := get(h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestRouter_APIGatedUntilStoreLoads(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := store.New(kv, &testutil.SequentialIDs{}, nil, zap.NewNop())
	h := setupHandler(t, s, kv)

	w := get(h, "/api/v1/clients")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = get(h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"loading"`)

	s.Initialize(context.Background())

	w = get(h, "/api/v1/clients")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_Routes(t *testing.T) {
	kv := storage.NewMemoryKV()
	h := setupHandler(t, testutil.NewStore(t, kv), kv)

	for _, path := range []string{
		"/api/v1/clients",
		"/api/v1/offers",
		"/api/v1/offers/next-number",
		"/api/v1/dashboard",
		"/api/v1/dashboard/columns",
	} {
		t.Run(path, func(t *testing.T) {
			w := get(h, path)
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"))
		})
	}

	w := get(h, "/api/v1/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
