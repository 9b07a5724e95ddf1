package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/simulador-financeiro/internal/config"
	"github.com/Dan9191/simulador-financeiro/internal/handler"
	"github.com/Dan9191/simulador-financeiro/internal/logging"
	"github.com/Dan9191/simulador-financeiro/internal/repository"
	"github.com/Dan9191/simulador-financeiro/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newAPICommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "api",
		Short: "Serve POST /simulacao",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			memCache := repository.NewMemoryCache()
			sweeper, err := repository.StartSweeper(memCache, cfg.CacheSweepSchedule, logger)
			if err != nil {
				return fmt.Errorf("invalid cache sweep schedule: %w", err)
			}
			defer sweeper.Stop()

			var cache repository.Cache = memCache
			if cfg.RedisAddr != "" {
				redisCache := repository.NewRedisCache(cfg.RedisAddr)
				defer redisCache.Close()
				if err := redisCache.Ping(ctx); err != nil {
					logger.Warnf("Redis at %s unavailable, using in-memory cache: %v", cfg.RedisAddr, err)
				} else {
					cache = redisCache
					logger.Infof("Caching simulations in Redis at %s", cfg.RedisAddr)
				}
			}

			svc := service.NewService(cache, cfg.CacheTTL, logger)
			h := handler.NewHandler(svc, logger)

			server := &http.Server{
				Addr:         fmt.Sprintf(":%s", cfg.Port),
				Handler:      h.Router(),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			}
			return serve(ctx, server, logger)
		},
	}
}

// serve runs the server until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, server *http.Server, logger *logrus.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server exited")
	return nil
}
