package citizen

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"cims/internal/audit"
	"cims/internal/citizen/metrics"
	id "cims/pkg/domain"
	dErrors "cims/pkg/domain-errors"
	"cims/pkg/requestcontext"
	"cims/pkg/sentinel"
)

// AuditPublisher is the slice of the audit publisher this service needs.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service orchestrates citizen registration and workflow moves.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditor = p }
}

// NewService constructs a Service.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates and persists a new registration. New registrations
// always enter the workflow as Encoded; validators move them from there.
func (s *Service) Register(ctx context.Context, actor id.StaffID, c *Citizen) (*Citizen, error) {
	now := requestcontext.Now(ctx)

	c.Status = StatusEncoded
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Normalize()

	if err := c.Validate(now); err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}

	if err := s.store.Create(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register citizen")
	}

	s.metrics.IncRegistered()
	s.emit(ctx, audit.Event{
		Action:    audit.ActionCitizenRegistered,
		ActorID:   actor,
		CitizenID: c.ID,
		ToStatus:  string(c.Status),
	})
	s.log(ctx, "citizen registered",
		"citizen_id", c.ID,
		"calendar_year", c.CalendarYear,
		"province", c.ProvinceCode,
	)
	return c, nil
}

// Get loads one registration.
func (s *Service) Get(ctx context.Context, citizenID int64) (*Citizen, error) {
	c, err := s.store.FindByID(ctx, citizenID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "citizen not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load citizen")
	}
	return c, nil
}

// List returns registrations matching the query.
func (s *Service) List(ctx context.Context, q Query) ([]Citizen, error) {
	records, err := s.store.List(ctx, q)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list citizens")
	}
	return records, nil
}

// UpdateStatus moves a registration to a new workflow status. Moving to Paid
// stamps the payment date (the supplied one, or the request time); moving
// anywhere else clears it.
func (s *Service) UpdateStatus(ctx context.Context, actor id.StaffID, citizenID int64, next Status, paymentDate *time.Time, remarks string) (*Citizen, error) {
	if _, err := ParseStatus(string(next)); err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}

	c, err := s.Get(ctx, citizenID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	prev := c.Status
	c.Status = next
	c.UpdatedAt = now
	if remarks != "" {
		c.Remarks = remarks
	}
	if next == StatusPaid {
		if paymentDate != nil {
			c.PaymentDate = paymentDate
		} else if c.PaymentDate == nil {
			c.PaymentDate = &now
		}
	} else {
		c.PaymentDate = nil
	}
	c.Normalize()

	if err := s.store.Update(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update citizen")
	}

	s.metrics.IncStatusChange(string(next))
	s.emit(ctx, audit.Event{
		Action:     audit.ActionStatusChanged,
		ActorID:    actor,
		CitizenID:  c.ID,
		FromStatus: string(prev),
		ToStatus:   string(next),
		Detail:     remarks,
	})
	s.log(ctx, "citizen status changed",
		"citizen_id", c.ID,
		"from", prev,
		"to", next,
	)
	return c, nil
}

// Delete removes a registration outright. Admin-only at the handler layer.
func (s *Service) Delete(ctx context.Context, actor id.StaffID, citizenID int64) error {
	if err := s.store.Delete(ctx, citizenID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "citizen not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete citizen")
	}
	s.emit(ctx, audit.Event{
		Action:    audit.ActionCitizenDeleted,
		ActorID:   actor,
		CitizenID: citizenID,
	})
	return nil
}

// ExportCSV streams the matching registrations as CSV.
func (s *Service) ExportCSV(ctx context.Context, actor id.StaffID, q Query, w io.Writer) error {
	records, err := s.List(ctx, q)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "last_name", "first_name", "middle_name", "birth_date", "sex",
		"status", "province_code", "lgu_code", "barangay_code", "calendar_year", "payment_date", "remarks"}
	if err := cw.Write(header); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write CSV")
	}
	for _, c := range records {
		paymentDate := ""
		if c.PaymentDate != nil {
			paymentDate = c.PaymentDate.Format("2006-01-02")
		}
		row := []string{
			strconv.FormatInt(c.ID, 10), c.LastName, c.FirstName, c.MiddleName,
			c.BirthDate.Format("2006-01-02"), string(c.Sex), string(c.Status),
			c.ProvinceCode, c.LGUCode, c.BarangayCode,
			strconv.Itoa(c.CalendarYear), paymentDate, c.Remarks,
		}
		if err := cw.Write(row); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write CSV")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to flush CSV")
	}

	s.metrics.IncExport()
	s.emit(ctx, audit.Event{
		Action:  audit.ActionListExported,
		ActorID: actor,
		Detail:  fmt.Sprintf("%d rows", len(records)),
	})
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor != nil {
		s.auditor.Emit(ctx, event)
	}
}

func (s *Service) log(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		args = append(args, "request_id", requestcontext.RequestID(ctx))
		s.logger.InfoContext(ctx, msg, args...)
	}
}
