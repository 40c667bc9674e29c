package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cims/internal/audit"
	"cims/internal/citizen"
	citizenhandler "cims/internal/citizen/handler"
	citizenmetrics "cims/internal/citizen/metrics"
	"cims/internal/dashboard"
	dashboardhandler "cims/internal/dashboard/handler"
	dashboardmetrics "cims/internal/dashboard/metrics"
	"cims/internal/geo"
	geohandler "cims/internal/geo/handler"
	"cims/internal/platform/config"
	"cims/internal/platform/httpserver"
	"cims/internal/platform/logger"
	"cims/internal/platform/middleware"
	"cims/internal/platform/postgres"
	platformredis "cims/internal/platform/redis"
	httptransport "cims/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services; nothing here should grow branches.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: Postgres when configured, in-memory otherwise (local dev).
	var (
		citizenStore citizen.Store
		geoStore     geo.Store
		auditStore   audit.Store
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		citizenStore = citizen.NewPostgresStore(pool)
		geoStore = geo.NewPostgresStore(pool)
		auditStore = audit.NewPostgresStore(pool)
	} else {
		log.Warn("DATABASE_URL unset, using in-memory stores")
		citizenStore = citizen.NewInMemoryStore()
		geoStore = geo.NewInMemoryStore()
		auditStore = audit.NewInMemoryStore()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	geoStore = geo.NewCache(geoStore, redisClient, cfg.Redis.TTL, log)

	var limiter middleware.Limiter
	if redisClient != nil {
		limiter = middleware.NewRedisLimiter(redisClient, cfg.RateLimit, cfg.RateLimitWindow)
	} else {
		limiter = middleware.NewMemoryLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	}

	auditor := audit.NewPublisher(1024, log)
	auditWorker := audit.NewWorker(auditStore, auditor.Inbox(), log)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	citizenService := citizen.NewService(citizenStore,
		citizen.WithLogger(log),
		citizen.WithMetrics(citizenmetrics.New()),
		citizen.WithAuditPublisher(auditor),
	)
	dashboardService := dashboard.NewService(citizenStore, geoStore,
		dashboard.WithLogger(log),
		dashboard.WithMetrics(dashboardmetrics.New()),
		dashboard.WithWindow(cfg.BenefitYears),
	)

	router := httptransport.NewRouter(
		middleware.NewJWTValidator(cfg.JWTSigningKey),
		limiter,
		log,
		citizenhandler.New(citizenService, log),
		geohandler.New(geoStore, log),
		dashboardhandler.New(dashboardService, log),
	)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting cims", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
