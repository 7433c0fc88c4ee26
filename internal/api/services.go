package api

import (
	"github.com/bargainhunt/backend/internal/ai"
	"github.com/bargainhunt/backend/internal/api/handlers"
	"github.com/bargainhunt/backend/internal/cache"
	"github.com/bargainhunt/backend/internal/config"
	"github.com/bargainhunt/backend/internal/database"
	"github.com/bargainhunt/backend/internal/giftcards"
	"github.com/bargainhunt/backend/internal/models"
	"github.com/bargainhunt/backend/internal/ratelimit"
	"github.com/bargainhunt/backend/internal/repository"
	"github.com/bargainhunt/backend/internal/service"
)

// Services groups everything the router dispatches to
type Services struct {
	Users         *service.UserService
	Quota         *service.QuotaService
	Subscriptions *service.SubscriptionService
	Stats         *service.StatsService
	Search        *service.SearchService
	GiftCards     handlers.GiftCardLister

	// Limiter is optional; without it no burst limit is applied
	Limiter *ratelimit.RateLimiter
	// Health lists the dependencies probed by /health
	Health map[string]handlers.Pinger
}

// NewServices wires the PostgreSQL and Redis backed services
func NewServices(cfg *config.Config, db *database.DB, redis *cache.Redis) *Services {
	userRepo := repository.NewUserRepository(db)
	searchLogRepo := repository.NewSearchLogRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	users := service.NewUserService(userRepo)
	quota := service.NewQuotaService(users, searchLogRepo, service.QuotaLimits{
		models.TierFree: cfg.FreeDailySearchLimit,
		models.TierPro:  cfg.ProDailySearchLimit,
	}, cfg.QuotaLocation())
	stats := service.NewStatsService(statsRepo, cfg.SavingsBaseline)

	gemini := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	deals := ai.NewDealService(gemini, ai.NewAICache(redis, cfg.DealCacheTTL))
	emails := ai.NewEmailService(gemini)

	return &Services{
		Users:         users,
		Quota:         quota,
		Subscriptions: service.NewSubscriptionService(subRepo),
		Stats:         stats,
		Search:        service.NewSearchService(quota, stats, deals, emails),
		GiftCards:     giftcards.NewService(cfg.GiftCardFeedURL, nil, redis, cfg.GiftCardCacheTTL),
		Limiter:       ratelimit.NewRateLimiter(redis, cfg.RateLimitPerMinute),
		Health: map[string]handlers.Pinger{
			"database": db,
			"redis":    handlers.PingFunc(redis.Health),
		},
	}
}
