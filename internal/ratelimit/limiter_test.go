package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bargainhunt/backend/internal/cache"
)

func newTestLimiter(t *testing.T, limit int) (*RateLimiter, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	l := NewRateLimiter(cache.NewRedisWithClient(client), limit)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllowWithinWindow(t *testing.T) {
	l, now := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, info, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2-i, info.Remaining)
		*now = now.Add(time.Millisecond)
	}

	allowed, info, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, info.Remaining)

	allowed, _, err = l.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, allowed, "limits are per client")

	*now = now.Add(time.Minute)
	allowed, _, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed, "old entries slide out of the window")
}

func TestReset(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	allowed, _, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, l.Reset(ctx, "ip"))
	allowed, _, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMiddleware(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many requests, please slow down"}`, rec.Body.String())
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestMiddlewareFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	l := NewRateLimiter(cache.NewRedisWithClient(client), 1)
	mr.Close()

	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.2")
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "192.0.2.1", ClientIP(req), "forwarding headers are not trusted")
}

func TestMiddlewareIgnoresRotatedForwardedFor(t *testing.T) {
	l, _ := newTestLimiter(t, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for _, xff := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
