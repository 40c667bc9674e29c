package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"cims/internal/citizen"
	"cims/internal/platform/middleware"
	"cims/internal/report"
	dErrors "cims/pkg/domain-errors"
	"cims/pkg/platform/httputil"
	"cims/pkg/requestcontext"
)

// Service defines the dashboard operations the transport needs.
type Service interface {
	Build(ctx context.Context, f report.Filter) (*report.AggregateReport, error)
}

// Handler serves the aggregate statistics endpoint.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts dashboard endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard/summary", h.handleSummary)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, ok := middleware.GetScope(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	if !scope.CanViewDashboard() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "dashboard is admin-only"))
		return
	}

	f, err := filterFromRequest(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rep, err := h.service.Build(ctx, scope.NarrowFilter(f))
	if err != nil {
		h.logger.ErrorContext(ctx, "report build failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rep)
}

const dateLayout = "2006-01-02"

// filterFromRequest maps dashboard query parameters onto a report filter.
// Unknown statuses and malformed years are validation errors rather than
// silently narrowing the report.
func filterFromRequest(r *http.Request) (report.Filter, error) {
	q := r.URL.Query()
	f := report.Filter{
		ProvinceCode: q.Get("province"),
		LGUCode:      q.Get("lgu"),
		BarangayCode: q.Get("barangay"),
	}

	for _, raw := range q["status"] {
		st, err := citizen.ParseStatus(raw)
		if err != nil {
			return f, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		f.Statuses = append(f.Statuses, st)
	}
	for _, raw := range q["year"] {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return f, dErrors.New(dErrors.CodeValidation, "year must be an integer")
		}
		f.TargetYears = append(f.TargetYears, year)
	}

	var err error
	if f.RegisteredFrom, err = parseDate(q.Get("registered_from"), false); err != nil {
		return f, err
	}
	if f.RegisteredTo, err = parseDate(q.Get("registered_to"), true); err != nil {
		return f, err
	}
	if f.PaidFrom, err = parseDate(q.Get("paid_from"), false); err != nil {
		return f, err
	}
	if f.PaidTo, err = parseDate(q.Get("paid_to"), true); err != nil {
		return f, err
	}

	if raw := q.Get("age_min"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return f, dErrors.New(dErrors.CodeValidation, "age_min must be an integer")
		}
		f.AgeMin = &v
	}
	if raw := q.Get("age_max"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return f, dErrors.New(dErrors.CodeValidation, "age_max must be an integer")
		}
		f.AgeMax = &v
	}
	return f, nil
}

func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "dates must be YYYY-MM-DD")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
