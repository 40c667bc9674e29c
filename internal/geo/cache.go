package geo

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	platformredis "cims/internal/platform/redis"
)

// Cache decorates a Store with Redis caching. Only the reference hierarchy is
// cached here; dashboard reports are always computed fresh. Cache failures
// fall through to the backing store, so Redis going away degrades latency,
// not correctness.
type Cache struct {
	next   Store
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache wraps next with a Redis cache. A nil client returns next
// unchanged, keeping wiring in main simple when Redis is unconfigured.
func NewCache(next Store, client *platformredis.Client, ttl time.Duration, logger *slog.Logger) Store {
	if client == nil {
		return next
	}
	return &Cache{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *Cache) ListProvinces(ctx context.Context) ([]Province, error) {
	var cached []Province
	if c.lookup(ctx, "geo:provinces", &cached) {
		return cached, nil
	}
	out, err := c.next.ListProvinces(ctx)
	if err != nil {
		return nil, err
	}
	c.save(ctx, "geo:provinces", out)
	return out, nil
}

func (c *Cache) ListLGUs(ctx context.Context, provinceCode string) ([]LGU, error) {
	key := "geo:lgus:" + provinceCode
	var cached []LGU
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}
	out, err := c.next.ListLGUs(ctx, provinceCode)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, out)
	return out, nil
}

func (c *Cache) ListBarangays(ctx context.Context, lguCode string) ([]Barangay, error) {
	key := "geo:barangays:" + lguCode
	var cached []Barangay
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}
	out, err := c.next.ListBarangays(ctx, lguCode)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, out)
	return out, nil
}

func (c *Cache) lookup(ctx context.Context, key string, v any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		c.warn(ctx, "corrupt cache entry", key, err)
		return false
	}
	return true
}

func (c *Cache) save(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.warn(ctx, "cache write failed", key, err)
	}
}

func (c *Cache) warn(ctx context.Context, msg, key string, err error) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, "key", key, "error", err)
	}
}
