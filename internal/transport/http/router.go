// Package httptransport assembles the public router. Handlers stay thin and
// delegate to services; this package only decides what hangs where and which
// middleware wraps it.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cims/internal/platform/middleware"
)

// Registrar is anything that can mount routes on the router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires all endpoints. Health and metrics are open; everything
// else sits behind staff authentication and a per-staff rate limit.
func NewRouter(validator middleware.ScopeValidator, limiter middleware.Limiter, logger *slog.Logger, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestMetadata)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))
		r.Use(middleware.RateLimit(limiter, logger))
		for _, h := range handlers {
			h.Register(r)
		}
	})

	return r
}
