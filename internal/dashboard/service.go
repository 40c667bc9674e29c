// Package dashboard assembles the aggregate statistics the admin screens
// render. It loads records and reference data, runs the pure aggregation
// engine, and returns one report per request - nothing is cached.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"cims/internal/benefit"
	"cims/internal/citizen"
	"cims/internal/dashboard/metrics"
	"cims/internal/geo"
	"cims/internal/report"
	dErrors "cims/pkg/domain-errors"
	"cims/pkg/requestcontext"
)

// CitizenSource is the slice of the citizen store the dashboard reads.
type CitizenSource interface {
	List(ctx context.Context, q citizen.Query) ([]citizen.Citizen, error)
}

// Service builds aggregate reports.
type Service struct {
	citizens CitizenSource
	geo      geo.Store
	window   []int
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithWindow overrides the default benefit window for every report whose
// filter does not select years explicitly.
func WithWindow(years []int) Option {
	return func(s *Service) {
		if len(years) > 0 {
			s.window = append([]int{}, years...)
		}
	}
}

// NewService constructs a dashboard service.
func NewService(citizens CitizenSource, geoStore geo.Store, opts ...Option) *Service {
	s := &Service{
		citizens: citizens,
		geo:      geoStore,
		window:   benefit.DefaultWindow(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window returns a copy of the effective default benefit window.
func (s *Service) Window() []int {
	return append([]int{}, s.window...)
}

// Build assembles a full aggregate report for the given filter. Record and
// reference loads fan out concurrently; so do the grouping passes, which are
// pure functions over the same filtered slice and write disjoint fields.
func (s *Service) Build(ctx context.Context, f report.Filter) (*report.AggregateReport, error) {
	start := time.Now()
	now := requestcontext.Now(ctx)

	if len(f.TargetYears) == 0 {
		f.TargetYears = s.Window()
	}

	var (
		records   []citizen.Citizen
		provinces []geo.Province
		lgus      []geo.LGU
	)

	g, loadCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.citizens.List(loadCtx, citizen.Query{
			ProvinceCode:   f.ProvinceCode,
			LGUCode:        f.LGUCode,
			BarangayCode:   f.BarangayCode,
			Statuses:       f.Statuses,
			RegisteredFrom: f.RegisteredFrom,
			RegisteredTo:   f.RegisteredTo,
		})
		return err
	})
	g.Go(func() error {
		var err error
		provinces, err = s.geo.ListProvinces(loadCtx)
		return err
	})
	if f.ProvinceCode != "" {
		g.Go(func() error {
			var err error
			lgus, err = s.geo.ListLGUs(loadCtx, f.ProvinceCode)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load report inputs")
	}

	// The store already pushed down what it could; the full pipeline runs
	// regardless so every stage is applied exactly once, in order.
	filtered := f.Apply(records)

	rep := &report.AggregateReport{TotalCitizens: len(filtered)}
	provinceRefs := toRefs(provinces, func(p geo.Province) (string, string) { return p.Code, p.Name })
	lguRefs := toRefs(lgus, func(l geo.LGU) (string, string) { return l.Code, l.Name })

	var cg errgroup.Group
	cg.Go(func() error { rep.ByStatus = report.ByStatus(filtered); return nil })
	cg.Go(func() error { rep.BySex = report.BySex(filtered); return nil })
	cg.Go(func() error { rep.ByAgeTier = report.ByAgeTier(filtered, f.TargetYears, now); return nil })
	cg.Go(func() error { rep.ByBirthMonth = report.ByBirthMonth(filtered); return nil })
	cg.Go(func() error { rep.ByBirthQuarter = report.ByBirthQuarter(filtered); return nil })
	cg.Go(func() error { rep.PaymentStats = report.PaymentStats(filtered, f.TargetYears); return nil })
	cg.Go(func() error { rep.ByProvince = report.ByProvince(filtered, provinceRefs); return nil })
	cg.Go(func() error { rep.PaidByExactAge = report.PaidByExactAge(filtered, f.TargetYears, now); return nil })
	if f.ProvinceCode != "" {
		cg.Go(func() error { rep.ByLGU = report.ByLGU(filtered, lguRefs); return nil })
	}
	_ = cg.Wait()

	s.metrics.ObserveBuild(time.Since(start), len(records))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "dashboard report built",
			"request_id", requestcontext.RequestID(ctx),
			"records", len(records),
			"matched", len(filtered),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return rep, nil
}

func toRefs[T any](items []T, fields func(T) (code, name string)) []report.GeoRef {
	out := make([]report.GeoRef, 0, len(items))
	for _, item := range items {
		code, name := fields(item)
		out = append(out, report.GeoRef{Code: code, Name: name})
	}
	return out
}
