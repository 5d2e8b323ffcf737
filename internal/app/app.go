package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tidefit/fit-server/internal/config"
	"github.com/tidefit/fit-server/internal/httpapi"
	"github.com/tidefit/fit-server/internal/service"
	"github.com/tidefit/fit-server/pkg/cache"
	"github.com/tidefit/fit-server/pkg/httpserver"
)

type App struct {
	logger     *zap.Logger
	cache      *cache.Cache
	httpServer *httpserver.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
		cache.WithKeyPrefix(cfg.CacheKeyPrefix),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	fitService := service.NewFitService(logger)

	handlers := httpapi.NewHandlers(fitService, cacheClient, logger,
		time.Duration(cfg.CacheTTLMinutes)*time.Minute)

	srv, err := httpserver.New(
		httpserver.WithPort(cfg.HTTPPort),
		httpserver.WithLogger(logger),
		httpserver.WithLogging(true),
		httpserver.WithMetrics(cfg.MetricsEnabled),
		httpserver.WithCORSOrigins(cfg.CORSOrigins...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http server: %w", err)
	}

	srv.RegisterRoutes(handlers.Routes)

	return &App{
		logger:     logger,
		cache:      cacheClient,
		httpServer: srv,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.httpServer.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Warn("http server shutdown error", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed")

	_ = a.logger.Sync()
	return nil
}
