package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DukeRupert/courtside/internal"
	"github.com/DukeRupert/courtside/internal/billing"
	"github.com/DukeRupert/courtside/internal/geocode"
	"github.com/DukeRupert/courtside/internal/handler"
	"github.com/DukeRupert/courtside/internal/jobs"
	"github.com/DukeRupert/courtside/internal/metrics"
	"github.com/DukeRupert/courtside/internal/middleware"
	"github.com/DukeRupert/courtside/internal/repository"
	"github.com/DukeRupert/courtside/internal/service"
	"github.com/DukeRupert/courtside/internal/storage"
	"github.com/DukeRupert/courtside/internal/worker"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	policy, err := cfg.FormPolicy()
	if err != nil {
		return fmt.Errorf("form policy: %w", err)
	}

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if err := internal.RunMigrations(ctx, db, logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	repo := repository.New(db)

	store, err := storage.New(storage.Config{
		Provider: cfg.StorageProvider,
		Local: storage.LocalConfig{
			BasePath: cfg.LocalStoragePath,
			BaseURL:  cfg.LocalStorageURL,
		},
		R2: storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}

	// Stripe is optional in development; without it every event is free.
	var billingService billing.Service
	if cfg.StripeSecretKey != "" {
		billingService = billing.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set; paid tickets are disabled")
	}

	var locations geocode.Provider
	if cfg.GeocoderBaseURL != "" {
		client, err := geocode.NewClient(geocode.Config{
			BaseURL:  cfg.GeocoderBaseURL,
			APIKey:   cfg.GeocoderAPIKey,
			Language: cfg.DisplayLanguage,
		}, logger)
		if err != nil {
			return fmt.Errorf("geocoder initialization failed: %w", err)
		}
		locations = client
	} else {
		logger.Warn("GEOCODER_BASE_URL not set; address search is disabled")
	}

	// Initialize services
	orgService := service.NewOrganizationService(repo, billingService, service.OrganizationConfig{
		BaseURL:        cfg.BaseURL,
		AccountCountry: cfg.StripeAccountCountry,
	}, logger)
	padelService := service.NewPadelService(repo, logger)
	eventService := service.NewEventService(db, repo, orgService, padelService, policy, logger)
	draftService := service.NewDraftService(repo, logger)
	dashboardService := service.NewDashboardService(repo, orgService, logger)
	financeService := service.NewFinanceService(repo, store, policy.Location, logger)
	coverService := service.NewCoverService(repo, store, service.NewImagingProcessor(), logger)

	// Background worker
	var w *worker.Worker
	if cfg.WorkerEnabled {
		w, err = worker.New(db, repo, worker.Config{
			Concurrency:  cfg.WorkerConcurrency,
			PollInterval: cfg.WorkerPollInterval,
			JobTimeout:   cfg.WorkerJobTimeout,
		}.WithDefaults(), logger)
		if err != nil {
			return fmt.Errorf("worker initialization failed: %w", err)
		}
		w.Register(jobs.NewProcessCoverImageHandler(coverService, logger))
		w.Register(jobs.NewExportSalesCSVHandler(financeService, logger))
	}

	// Initialize middleware
	isSecure := cfg.Env != "development"
	orgMw := middleware.NewOrganizationMiddleware(orgService, logger)
	locationLimiter := middleware.NewLocationRateLimiter(cfg.LocationSearchRate, logger)
	defer locationLimiter.Close()
	limitLocations := middleware.NewRateLimitMiddleware(locationLimiter, logger)
	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword, logger)
	if !metricsAuth.Enabled() {
		logger.Warn("METRICS_USERNAME and METRICS_PASSWORD not set; /metrics is unprotected")
	}

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	handler.NewHealthHandler(db, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	if cfg.StorageProvider == storage.ProviderLocal {
		files := http.FileServer(http.Dir(cfg.LocalStoragePath))
		mux.Handle("GET /files/", http.StripPrefix("/files/", files))
	}

	handler.NewEventHandler(eventService, logger).RegisterRoutes(mux, orgMw.Resolve)
	handler.NewDraftHandler(draftService, logger).RegisterRoutes(mux, orgMw.Resolve)
	handler.NewDashboardHandler(dashboardService, logger).RegisterRoutes(mux, orgMw.Resolve)
	handler.NewOrganizationHandler(orgService, logger).RegisterRoutes(mux, orgMw.Resolve)
	handler.NewFinanceHandler(financeService, logger).RegisterRoutes(mux, orgMw.Resolve)
	handler.NewCoverHandler(coverService, logger).RegisterRoutes(mux, orgMw.Resolve)
	handler.NewPadelHandler(padelService, logger).RegisterRoutes(mux, orgMw.Resolve)
	handler.NewLocationHandler(locations, logger).RegisterRoutes(mux, limitLocations.Limit)
	handler.NewWebhookHandler(billingService, orgService, logger).RegisterRoutes(mux)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handler.NotFoundResponse(w, r, logger)
	})

	root := middleware.Stack(mux,
		metrics.Middleware,
		middleware.NewRequestLoggingMiddleware(logger).Handler,
		middleware.NewSecurityHeadersMiddleware(isSecure).Handler,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	if w != nil {
		w.Start(workerCtx)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, initiating graceful shutdown...")
	case err := <-serverErr:
		logger.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if w != nil {
		w.Stop()
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
