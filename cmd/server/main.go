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

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jafarshop/storeconfig/internal/api"
	"github.com/jafarshop/storeconfig/internal/cache"
	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/config"
	"github.com/jafarshop/storeconfig/internal/repository"
	"github.com/jafarshop/storeconfig/internal/repository/postgres"
	"github.com/jafarshop/storeconfig/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog backend. Without a base URL the API still starts and every
	// catalog-backed route reports the missing setting.
	var backend service.Backend
	client, err := catalog.New(cfg.Catalog, logger)
	if err != nil {
		logger.Error("Catalog backend not configured", zap.Error(err))
		backend = service.Unconfigured(err)
	} else {
		backend = client
		logger.Info("Catalog backend configured", zap.String("base_url", client.BaseURL()))
	}

	// Marketplace cache
	var marketplaceCache cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, marketplace cache disabled", zap.Error(err))
		} else {
			defer rc.Close()
			marketplaceCache = rc
		}
	}

	// Audit database
	repos := &repository.Repositories{}
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		repos = postgres.NewRepositories(db, logger)
	} else {
		logger.Info("DB_HOST not set, configuration audit trail disabled")
	}

	services := service.NewServices(backend, marketplaceCache, cfg.Redis.MarketplaceTTL, repos, logger)
	router := api.NewRouter(cfg, services, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
