// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr          string
	DatabaseURL   string
	Redis         RedisConfig
	JWTSigningKey string

	// BenefitYears overrides the default reporting window. Empty means the
	// built-in window; the program office updates this as new windows are
	// legislated rather than the code sliding it automatically.
	BenefitYears []int

	// RateLimit caps authenticated requests per staff account per window.
	RateLimit       int
	RateLimitWindow time.Duration

	ShutdownTimeout time.Duration
}

// RedisConfig holds connection settings for the reference-data cache.
// An empty URL disables Redis entirely.
type RedisConfig struct {
	URL          string
	TTL          time.Duration
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:            envOr("CIMS_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSigningKey:   envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		RateLimit:       envIntOr("CIMS_RATE_LIMIT", 300),
		RateLimitWindow: envDurationOr("CIMS_RATE_LIMIT_WINDOW", time.Minute),
		ShutdownTimeout: 10 * time.Second,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			TTL:          envDurationOr("CIMS_GEO_CACHE_TTL", 6*time.Hour),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}

	if raw := os.Getenv("CIMS_BENEFIT_YEARS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if y, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				cfg.BenefitYears = append(cfg.BenefitYears, y)
			}
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
