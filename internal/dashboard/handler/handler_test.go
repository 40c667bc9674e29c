package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"cims/internal/authz"
	"cims/internal/citizen"
	"cims/internal/dashboard"
	"cims/internal/geo"
	"cims/internal/report"
	id "cims/pkg/domain"
	"cims/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	citizens *citizen.InMemoryStore
	router   chi.Router
	now      time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.citizens = citizen.NewInMemoryStore()
	s.now = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	geoStore := geo.NewInMemoryStore()
	geoStore.Seed([]geo.Province{{Code: "0128", Name: "Ilocos Norte"}}, nil, nil)

	service := dashboard.NewService(s.citizens, geoStore, dashboard.WithWindow([]int{2024}))
	h := New(service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) get(scope authz.Scope, target string) *report.AggregateReport {
	req := testutil.NewJSONRequest(s.T(), http.MethodGet, target, nil)
	req = testutil.WithScope(req, scope)
	req = testutil.WithRequestTime(req, s.now)

	rec := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rec.Code)
	return testutil.UnmarshalResponse[report.AggregateReport](s.T(), rec)
}

func (s *HandlerSuite) adminScope() authz.Scope {
	return authz.Scope{StaffID: id.StaffID(uuid.New()), Role: id.RoleAdmin}
}

func (s *HandlerSuite) seed(status citizen.Status, paymentDate *time.Time) {
	c := citizen.Citizen{
		FirstName: "Lola", LastName: "Reyes",
		BirthDate: time.Date(1944, time.March, 10, 0, 0, 0, 0, time.UTC),
		Sex:       citizen.SexFemale, Status: status,
		ProvinceCode: "0128", LGUCode: "012801", BarangayCode: "012801001",
		PaymentDate: paymentDate,
		CreatedAt:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	c.Normalize()
	s.Require().NoError(s.citizens.Create(context.Background(), &c))
}

func (s *HandlerSuite) TestSummaryIsAdminOnly() {
	for _, role := range []id.Role{id.RoleEncoder, id.RoleValidator} {
		scope := authz.Scope{StaffID: id.StaffID(uuid.New()), Role: role}
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/dashboard/summary", nil)
		rec := testutil.DoRequest(s.router, testutil.WithScope(req, scope))

		s.Equal(http.StatusForbidden, rec.Code)
		s.Equal("forbidden", testutil.UnmarshalErrorResponse(s.T(), rec)["error"])
	}
}

func (s *HandlerSuite) TestSummaryWithoutScopeIsUnauthorized() {
	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/dashboard/summary", nil)
	rec := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestSummary() {
	paidAt := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	s.seed(citizen.StatusPaid, &paidAt)
	s.seed(citizen.StatusEncoded, nil)

	rep := s.get(s.adminScope(), "/dashboard/summary")

	s.Equal(2, rep.TotalCitizens)
	s.Len(rep.ByStatus, 2)
	s.Len(rep.PaymentStats, 8)
	s.Require().Len(rep.ByProvince, 1)
	s.Equal(2, rep.ByProvince[0].Total)
}

func (s *HandlerSuite) TestSummaryAppliesStatusFilter() {
	paidAt := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	s.seed(citizen.StatusPaid, &paidAt)
	s.seed(citizen.StatusEncoded, nil)

	rep := s.get(s.adminScope(), "/dashboard/summary?status=paid")
	s.Equal(1, rep.TotalCitizens)
}

func (s *HandlerSuite) TestSummaryAppliesPaymentDateFilter() {
	paidAt := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	s.seed(citizen.StatusPaid, &paidAt)
	s.seed(citizen.StatusPaid, nil)

	rep := s.get(s.adminScope(), "/dashboard/summary?paid_from=2024-06-01&paid_to=2024-06-30")
	s.Equal(1, rep.TotalCitizens)
}

func (s *HandlerSuite) TestSummaryRejectsBadParameters() {
	for _, target := range []string{
		"/dashboard/summary?status=archived",
		"/dashboard/summary?year=twentytwentyfour",
		"/dashboard/summary?registered_from=01-02-2024",
		"/dashboard/summary?age_min=old",
	} {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, target, nil)
		rec := testutil.DoRequest(s.router, testutil.WithScope(req, s.adminScope()))
		s.Equal(http.StatusBadRequest, rec.Code, target)
	}
}
