// Package ratelimit throttles request bursts per client IP with a Redis sliding window.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bargainhunt/backend/internal/api/response"
	"github.com/bargainhunt/backend/internal/cache"
	"github.com/bargainhunt/backend/internal/logger"
)

// DefaultRequestsPerMinute is the burst allowance per client
const DefaultRequestsPerMinute = 60

// Info describes the state of a client's window
type Info struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"` // Unix timestamp
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	cache  *cache.Redis
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter allows requestsPerMinute requests per client in any one-minute window
func NewRateLimiter(cache *cache.Redis, requestsPerMinute int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRequestsPerMinute
	}
	return &RateLimiter{
		cache:  cache,
		limit:  requestsPerMinute,
		window: time.Minute,
		now:    time.Now,
	}
}

func limitKey(identifier string) string {
	return "ratelimit:minute:" + identifier
}

// Allow records a request for identifier if it fits in the window
func (r *RateLimiter) Allow(ctx context.Context, identifier string) (bool, *Info, error) {
	allowed, remaining, err := r.checkSlidingWindowLimit(ctx, limitKey(identifier))
	if err != nil {
		return false, nil, err
	}
	return allowed, &Info{
		Limit:     r.limit,
		Remaining: remaining,
		Reset:     r.now().Add(r.window).Unix(),
	}, nil
}

// Middleware returns HTTP middleware that enforces the limit per client IP.
// Requests pass through when Redis is unavailable.
func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		allowed, info, err := r.Allow(req.Context(), ClientIP(req))
		if err != nil {
			logger.Warn("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, req)
			return
		}

		setRateLimitHeaders(w, info)
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(r.window.Seconds())))
			response.TooManyRequests(w, "Too many requests, please slow down")
			return
		}

		next.ServeHTTP(w, req)
	})
}

func setRateLimitHeaders(w http.ResponseWriter, info *Info) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.Reset, 10))
}

// ClientIP returns the host part of the remote address. Forwarding headers are
// ignored here; behind a trusted proxy the router rewrites RemoteAddr first.
func ClientIP(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}
