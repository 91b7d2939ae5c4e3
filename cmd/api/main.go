package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/straye-as/offer-tracker/docs"
	"github.com/straye-as/offer-tracker/internal/config"
	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/http/handler"
	"github.com/straye-as/offer-tracker/internal/http/middleware"
	"github.com/straye-as/offer-tracker/internal/http/router"
	"github.com/straye-as/offer-tracker/internal/jobs"
	"github.com/straye-as/offer-tracker/internal/logger"
	"github.com/straye-as/offer-tracker/internal/service"
	"github.com/straye-as/offer-tracker/internal/storage"
	"github.com/straye-as/offer-tracker/internal/store"
	"go.uber.org/zap"
)

// @title Offer Tracker API
// @version 1.0
// @description Tracks commercial offers (quotes) issued to clients, with a filterable dashboard

// @contact.name API Support
// @contact.email support@straye.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
		zap.String("locale", basicCfg.App.Locale),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)

	// In development credentials come from the environment,
	// elsewhere from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	kv, closeKV, err := storage.NewKV(ctx, &cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := closeKV(); err != nil {
			log.Warn("Error closing storage", zap.Error(err))
		}
	}()
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// The store loads in the background; the API answers 503 until it is ready
	offerStore := store.New(kv, store.NewIDGenerator(log), time.Now, log)
	go offerStore.Initialize(ctx)

	locale := domain.ParseLocale(cfg.App.Locale)

	// Services
	preferenceService := service.NewPreferenceService(kv, log)
	clientService := service.NewClientService(offerStore, locale, log)
	offerService := service.NewOfferService(offerStore, locale, log)
	dashboardService := service.NewDashboardService(offerStore, preferenceService, locale, log)

	// Handlers
	clientHandler := handler.NewClientHandler(clientService, log)
	offerHandler := handler.NewOfferHandler(offerService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, preferenceService, log)

	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(
		cfg,
		log,
		offerStore,
		kv,
		rateLimiter,
		clientHandler,
		offerHandler,
		dashboardHandler,
	)

	scheduler, closeBackup, err := startBackups(ctx, cfg, kv, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBackup(); err != nil {
			log.Warn("Error closing backup storage", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

// startBackups opens the backup target and schedules the snapshot job.
// It returns a nil scheduler when backups are disabled.
func startBackups(ctx context.Context, cfg *config.Config, source storage.KV, log *zap.Logger) (*jobs.Scheduler, func() error, error) {
	noop := func() error { return nil }
	if !cfg.Backup.Enabled {
		log.Info("Snapshot backup disabled")
		return nil, noop, nil
	}

	target, closeTarget, err := storage.NewKV(ctx, &cfg.Backup.Target, log)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to initialize backup storage: %w", err)
	}

	scheduler := jobs.NewScheduler(log)
	if err := jobs.RegisterBackupJob(
		scheduler,
		source,
		target,
		log,
		cfg.Backup.Cron,
		cfg.Backup.TimeoutDuration(),
	); err != nil {
		_ = closeTarget()
		return nil, noop, fmt.Errorf("failed to register backup job: %w", err)
	}

	scheduler.Start()
	log.Info("Scheduler started with snapshot backup",
		zap.String("cron_expr", cfg.Backup.Cron),
		zap.String("target_mode", cfg.Backup.Target.Mode),
		zap.Duration("timeout", cfg.Backup.TimeoutDuration()),
	)

	return scheduler, closeTarget, nil
}
