package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bargainhunt/backend/internal/api"
	"github.com/bargainhunt/backend/internal/cache"
	"github.com/bargainhunt/backend/internal/config"
	"github.com/bargainhunt/backend/internal/database"
	"github.com/bargainhunt/backend/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := logger.Configure(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		logger.Warn("falling back to info logging", "error", err)
	}

	log := logger.With("main")
	log.Info("starting bargain API", "env", cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.New(ctx, database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisCache, err := cache.NewRedisFromURL(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	svc := api.NewServices(cfg, db, redisCache)
	if err := svc.Stats.Seed(ctx); err != nil {
		log.Error("failed to seed savings counter", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(cfg, svc),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
