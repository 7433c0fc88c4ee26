// Package api assembles the HTTP router of the bargain search backend.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bargainhunt/backend/internal/api/handlers"
	"github.com/bargainhunt/backend/internal/api/response"
	"github.com/bargainhunt/backend/internal/config"
	"github.com/bargainhunt/backend/internal/middleware"
)

// NewRouter creates and configures the main router
func NewRouter(cfg *config.Config, svc *Services) *chi.Mux {
	r := chi.NewRouter()

	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.EnableMetrics {
		r.Use(middleware.Metrics)
	}
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	healthHandler := handlers.NewHealthChecker(svc.Health)
	userHandler := handlers.NewUserHandler(svc.Users, svc.Quota)
	subHandler := handlers.NewSubscriptionHandler(svc.Subscriptions)
	statsHandler := handlers.NewStatsHandler(svc.Stats)
	searchHandler := handlers.NewSearchHandler(svc.Search)
	giftCardHandler := handlers.NewGiftCardHandler(svc.GiftCards)
	tiersHandler := handlers.NewTiersHandler(svc.Quota, cfg.RateLimitPerMinute)

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", handlers.LivenessProbe)
	r.Get("/health/ready", healthHandler.ReadinessProbe)
	if cfg.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if svc.Limiter != nil {
			r.Use(svc.Limiter.Middleware)
		}

		r.Route("/user", func(r chi.Router) {
			r.Post("/init", userHandler.Init)
			r.Post("/upgrade", userHandler.Upgrade)
			r.Post("/reset", userHandler.Reset)
			r.Post("/log-search", userHandler.LogSearch)
			r.Get("/{userId}", userHandler.Get)
		})

		r.Post("/subscribe", subHandler.Subscribe)
		r.Post("/unsubscribe", subHandler.Unsubscribe)
		r.Get("/subscriptions", subHandler.List)

		r.Get("/stats", statsHandler.Get)
		r.Post("/stats/increment", statsHandler.Increment)

		r.Post("/search", searchHandler.Search)
		r.Post("/email-draft", searchHandler.EmailDraft)
		r.Get("/gift-cards", giftCardHandler.List)
		r.Get("/tiers", tiersHandler.List)
	})

	return r
}
