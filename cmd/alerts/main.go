package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bargainhunt/backend/internal/ai"
	"github.com/bargainhunt/backend/internal/alerts"
	"github.com/bargainhunt/backend/internal/cache"
	"github.com/bargainhunt/backend/internal/config"
	"github.com/bargainhunt/backend/internal/database"
	"github.com/bargainhunt/backend/internal/logger"
	"github.com/bargainhunt/backend/internal/repository"
	"github.com/bargainhunt/backend/internal/service"
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

	log := logger.With("alerts")
	log.Info("starting store alert worker", "env", cfg.Env)

	if cfg.GeminiAPIKey == "" {
		log.Error("GEMINI_API_KEY is required for store alerts")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	subs := service.NewSubscriptionService(repository.NewSubscriptionRepository(db))
	gemini := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	deals := ai.NewDealService(gemini, ai.NewAICache(redisCache, cfg.DealCacheTTL))

	job := alerts.NewJob(subs, deals, alerts.NewSeenStore(redisCache), alerts.NewLogNotifier(), alerts.Config{
		Workers: cfg.AlertsWorkers,
	})
	scheduler := alerts.NewScheduler(job, cfg.AlertsInterval, cfg.AlertsRunOnStart)

	log.Info("alert worker started", "interval", cfg.AlertsInterval, "workers", cfg.AlertsWorkers)
	scheduler.Start(ctx)

	stats := scheduler.GetStats()
	log.Info("alert worker stopped", "runs", stats.RunCount, "errors", stats.ErrorCount)
}
