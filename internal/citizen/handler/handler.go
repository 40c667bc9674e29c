package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"cims/internal/citizen"
	"cims/internal/platform/middleware"
	id "cims/pkg/domain"
	dErrors "cims/pkg/domain-errors"
	"cims/pkg/platform/httputil"
	"cims/pkg/requestcontext"
)

// Service defines the citizen operations the transport needs.
type Service interface {
	Register(ctx context.Context, actor id.StaffID, c *citizen.Citizen) (*citizen.Citizen, error)
	Get(ctx context.Context, citizenID int64) (*citizen.Citizen, error)
	List(ctx context.Context, q citizen.Query) ([]citizen.Citizen, error)
	UpdateStatus(ctx context.Context, actor id.StaffID, citizenID int64, next citizen.Status, paymentDate *time.Time, remarks string) (*citizen.Citizen, error)
	Delete(ctx context.Context, actor id.StaffID, citizenID int64) error
	ExportCSV(ctx context.Context, actor id.StaffID, q citizen.Query, w io.Writer) error
}

// Handler wires citizen endpoints to the citizen service. Capability checks
// happen here, at the door; the service below assumes an authorized caller.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts citizen endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/citizens", func(r chi.Router) {
		r.Post("/", h.handleRegister)
		r.Get("/", h.handleList)
		r.Get("/export.csv", h.handleExport)
		r.Route("/{citizenID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/status", h.handleUpdateStatus)
			r.Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, ok := middleware.GetScope(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	if !scope.CanRegister() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "role may not register citizens"))
		return
	}

	var req RegisterRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := req.ToModel()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !scope.AllowsCitizen(c) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "citizen is outside your assignment"))
		return
	}

	created, err := h.service.Register(ctx, scope.StaffID, c)
	if err != nil {
		h.logger.ErrorContext(ctx, "citizen registration failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, ok := middleware.GetScope(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	records, err := h.service.List(ctx, scope.NarrowQuery(queryFromRequest(r)))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(records))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, ok := middleware.GetScope(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	citizenID, err := parseCitizenID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.Get(ctx, citizenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !scope.AllowsCitizen(c) {
		// Outside-assignment records read as absent, not forbidden.
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "citizen not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, ok := middleware.GetScope(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	citizenID, err := parseCitizenID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	next, err := req.ParsedStatus()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	paymentDate, err := req.ParsedPaymentDate()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	current, err := h.service.Get(ctx, citizenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !scope.AllowsCitizen(current) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "citizen not found"))
		return
	}
	if !scope.AllowsStatusMove(current.Status, next) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "role may not make this status move"))
		return
	}

	updated, err := h.service.UpdateStatus(ctx, scope.StaffID, citizenID, next, paymentDate, req.Remarks)
	if err != nil {
		h.logger.ErrorContext(ctx, "status update failed",
			"request_id", requestcontext.RequestID(ctx),
			"citizen_id", citizenID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, ok := middleware.GetScope(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	if !scope.CanDelete() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "only admins may delete registrations"))
		return
	}
	citizenID, err := parseCitizenID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, scope.StaffID, citizenID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, ok := middleware.GetScope(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	if !scope.CanExport() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "role may not export"))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="citizens.csv"`)
	if err := h.service.ExportCSV(ctx, scope.StaffID, scope.NarrowQuery(queryFromRequest(r)), w); err != nil {
		h.logger.ErrorContext(ctx, "export failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

func parseCitizenID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "citizenID")
	citizenID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || citizenID <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid citizen id")
	}
	return citizenID, nil
}
