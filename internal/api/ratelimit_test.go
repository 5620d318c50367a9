package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/nerrad567/bakery-core/internal/infrastructure/config"
	"github.com/nerrad567/bakery-core/internal/infrastructure/metrics"
)

func TestRateLimiter_Allow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2})
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"), "third request within burst should be rejected")

	// Other clients have their own bucket.
	assert.True(t, rl.Allow("10.0.0.2"))

	// 60/min refills one token per second.
	now = now.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 1})
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(2 * time.Minute)
	rl.Allow("recent")
	now = now.Add(2 * time.Minute)

	rl.evictIdle()

	assert.Equal(t, 1, rl.VisitorCount())
}

func TestRateLimiter_MinimumBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60})
	assert.True(t, rl.Allow("10.0.0.1"), "zero burst would reject every request")
}

func TestRateLimitMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	deps, _ := testDeps(t)
	deps.Collector = metrics.NewMetrics(reg)
	srv := newTestServer(t, deps)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv.limiter = NewRateLimiter(ctx, config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 2})
	router := srv.buildRouter()

	get := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/bakeries", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, get("192.0.2.1:5000").Code)
	assert.Equal(t, http.StatusOK, get("192.0.2.1:5001").Code)

	w := get("192.0.2.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "too many requests", errorBody(t, w))

	assert.Equal(t, http.StatusOK, get("192.0.2.2:5000").Code, "other clients are unaffected")
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.Collector.RateLimitHits.WithLabelValues(rateLimitScope)))

	// Health stays reachable for a throttled client.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.1:5003"
	hw := httptest.NewRecorder()
	router.ServeHTTP(hw, req)
	assert.Equal(t, http.StatusOK, hw.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "203.0.113.7:41000"
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	assert.Equal(t, "203.0.113.7", clientIP(req), "proxy headers are not trusted")

	req.RemoteAddr = "203.0.113.8"
	assert.Equal(t, "203.0.113.8", clientIP(req))
}
