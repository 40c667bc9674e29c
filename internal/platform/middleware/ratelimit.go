package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	platformredis "cims/internal/platform/redis"
	"cims/pkg/requestcontext"
)

// Limiter counts requests per key over a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter implements a fixed-window counter on Redis so the limit holds
// across instances.
type RedisLimiter struct {
	client *platformredis.Client
	limit  int64
	window time.Duration
}

func NewRedisLimiter(client *platformredis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: int64(limit), window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := "ratelimit:" + key
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("increment rate limit counter: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("set rate limit window: %w", err)
		}
	}
	return n <= l.limit, nil
}

// MemoryLimiter is the single-instance fallback when Redis is unconfigured.
type MemoryLimiter struct {
	mu      sync.Mutex
	counts  map[string]int64
	resetAt time.Time
	limit   int64
	window  time.Duration
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		counts: make(map[string]int64),
		limit:  int64(limit),
		window: window,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if now.After(l.resetAt) {
		l.counts = make(map[string]int64)
		l.resetAt = now.Add(l.window)
	}
	l.counts[key]++
	return l.counts[key] <= l.limit, nil
}

// RateLimit throttles authenticated requests per staff account. Limiter
// failures fail open; the limiter protects capacity, it is not an
// availability dependency.
func RateLimit(limiter Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			scope, ok := GetScope(ctx)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := limiter.Allow(ctx, scope.StaffID.String())
			if err != nil {
				logger.WarnContext(ctx, "rate limit check failed",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				logger.WarnContext(ctx, "rate limit exceeded",
					"staff_id", scope.StaffID.String(),
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = fmt.Fprint(w, `{"error":"rate_limited","error_description":"Too many requests, slow down"}`)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
