package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cims/internal/geo"
	dErrors "cims/pkg/domain-errors"
	"cims/pkg/platform/httputil"
)

// Handler serves the cascading geography lookups behind the registration
// form. Read-only; any authenticated staff role may call these.
type Handler struct {
	store  geo.Store
	logger *slog.Logger
}

func New(store geo.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts geography endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/geo", func(r chi.Router) {
		r.Get("/provinces", h.handleProvinces)
		r.Get("/provinces/{provinceCode}/lgus", h.handleLGUs)
		r.Get("/lgus/{lguCode}/barangays", h.handleBarangays)
	})
}

func (h *Handler) handleProvinces(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	provinces, err := h.store.ListProvinces(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "province lookup failed", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list provinces"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"provinces": provinces})
}

func (h *Handler) handleLGUs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	provinceCode := chi.URLParam(r, "provinceCode")
	lgus, err := h.store.ListLGUs(ctx, provinceCode)
	if err != nil {
		h.logger.ErrorContext(ctx, "lgu lookup failed", "province", provinceCode, "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list LGUs"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"lgus": lgus})
}

func (h *Handler) handleBarangays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lguCode := chi.URLParam(r, "lguCode")
	barangays, err := h.store.ListBarangays(ctx, lguCode)
	if err != nil {
		h.logger.ErrorContext(ctx, "barangay lookup failed", "lgu", lguCode, "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list barangays"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"barangays": barangays})
}
