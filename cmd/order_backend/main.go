package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/SscSPs/drive_thru_order_app/internal/adapters/llm"
	portssvc "github.com/SscSPs/drive_thru_order_app/internal/core/ports/services"
	"github.com/SscSPs/drive_thru_order_app/internal/core/services"
	"github.com/SscSPs/drive_thru_order_app/internal/handlers"
	"github.com/SscSPs/drive_thru_order_app/internal/middleware"
	"github.com/SscSPs/drive_thru_order_app/internal/platform/config"
	"github.com/SscSPs/drive_thru_order_app/internal/platform/metrics"
	"github.com/SscSPs/drive_thru_order_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/drive_thru_order_app/internal/repositories/memory"
	"github.com/SscSPs/drive_thru_order_app/internal/utils"
	"github.com/SscSPs/drive_thru_order_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Drive-Thru Order API
// @version 1.0
// @description Order ledger for a single drive-thru session.

// @host localhost:8080
// @BasePath /
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionID := uuid.NewString()
	logger = logger.With(slog.String("session_id", sessionID))

	var dbPool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		dbPool, err = setupDatabase(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize history archive", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
	}

	repos := pgsql.NewRepositoryProvider(memory.NewLedgerRepository(), dbPool)

	var publisher services.EntryPublisher
	if repos.ArchiveRepo != nil {
		archivePublisher := services.NewArchivePublisher(repos.ArchiveRepo, sessionID, cfg.ArchiveBufferSize, logger)
		workerDone := make(chan struct{})
		go func() {
			defer close(workerDone)
			archivePublisher.Run(context.WithoutCancel(ctx))
		}()
		// drain before the pool closes
		defer func() {
			archivePublisher.Close()
			<-workerDone
		}()
		publisher = archivePublisher
	}

	var translator portssvc.ActionTranslator
	if cfg.OpenAIAPIKey != "" {
		translator = llm.NewOpenAITranslator(&http.Client{}, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
		logger.Info("Language translator enabled", slog.String("model", cfg.OpenAIModel))
	}

	serviceContainer := services.NewServiceContainer(cfg, sessionID, repos, translator, publisher)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serverMetrics := metrics.NewServerMetrics(registry)

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateLimiter := limiter.New(memorystore.NewStore(), rate)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	r.Use(middleware.MetricsMiddleware(serverMetrics))
	r.Use(middleware.PosthogMiddleware(posthogClient, sessionID))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, serverMetrics, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// setupDatabase applies migrations and opens the archive pool.
func setupDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
			return nil, err
		}
	}
	return database.NewPgxPool(ctx, cfg.DatabaseURL)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
