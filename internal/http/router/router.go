package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/offer-tracker/internal/config"
	"github.com/straye-as/offer-tracker/internal/http/handler"
	"github.com/straye-as/offer-tracker/internal/http/middleware"
	"github.com/straye-as/offer-tracker/internal/storage"
	"github.com/straye-as/offer-tracker/internal/store"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/straye-as/offer-tracker/docs" // Import generated swagger docs
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	store            *store.Store
	kv               storage.KV
	rateLimiter      *middleware.RateLimiter
	clientHandler    *handler.ClientHandler
	offerHandler     *handler.OfferHandler
	dashboardHandler *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	store *store.Store,
	kv storage.KV,
	rateLimiter *middleware.RateLimiter,
	clientHandler *handler.ClientHandler,
	offerHandler *handler.OfferHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		store:            store,
		kv:               kv,
		rateLimiter:      rateLimiter,
		clientHandler:    clientHandler,
		offerHandler:     offerHandler,
		dashboardHandler: dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Readiness: store loaded and storage reachable
	r.Get("/health/ready", rt.ready)

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireReady(rt.store))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", rt.clientHandler.List)
			r.Post("/", rt.clientHandler.Create)
		})

		r.Route("/offers", func(r chi.Router) {
			r.Get("/", rt.offerHandler.List)
			r.Post("/", rt.offerHandler.Create)
			r.Get("/next-number", rt.offerHandler.NextNumber)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", rt.dashboardHandler.Get)
			r.Get("/columns", rt.dashboardHandler.GetColumns)
			r.Put("/columns", rt.dashboardHandler.UpdateColumns)
		})
	})

	return r
}

func (rt *Router) ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]interface{})
	allHealthy := true

	if rt.store.Ready() {
		checks["store"] = map[string]interface{}{"status": "healthy"}
	} else {
		checks["store"] = map[string]interface{}{"status": "loading"}
		allHealthy = false
	}

	if pinger, ok := rt.kv.(storage.Pinger); ok {
		if err := pinger.Ping(r.Context()); err != nil {
			rt.logger.Error("Storage health check failed", zap.Error(err))
			checks["storage"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["storage"] = map[string]interface{}{"status": "healthy"}
		}
	}

	status, label := http.StatusOK, "healthy"
	if !allHealthy {
		status, label = http.StatusServiceUnavailable, "unhealthy"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": label,
		"checks": checks,
	})
}
