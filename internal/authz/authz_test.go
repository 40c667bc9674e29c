package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"cims/internal/citizen"
	"cims/internal/report"
	id "cims/pkg/domain"
)

type AuthzSuite struct {
	suite.Suite
}

func TestAuthzSuite(t *testing.T) {
	suite.Run(t, new(AuthzSuite))
}

func scope(role id.Role, province, lgu string) Scope {
	return Scope{
		StaffID:      id.StaffID(uuid.New()),
		Role:         role,
		ProvinceCode: province,
		LGUCode:      lgu,
	}
}

func (s *AuthzSuite) TestAllowsCitizen() {
	c := &citizen.Citizen{ProvinceCode: "0128", LGUCode: "012801"}

	s.True(scope(id.RoleAdmin, "", "").AllowsCitizen(c))
	s.True(scope(id.RoleEncoder, "0128", "").AllowsCitizen(c))
	s.True(scope(id.RoleEncoder, "0128", "012801").AllowsCitizen(c))
	s.False(scope(id.RoleEncoder, "0155", "").AllowsCitizen(c))
	s.False(scope(id.RoleEncoder, "0128", "012899").AllowsCitizen(c))
}

func (s *AuthzSuite) TestNarrowQueryOverridesCallerGeography() {
	sc := scope(id.RoleValidator, "0128", "012801")
	q := sc.NarrowQuery(citizen.Query{ProvinceCode: "0155"})
	s.Equal("0128", q.ProvinceCode)
	s.Equal("012801", q.LGUCode)
}

func (s *AuthzSuite) TestNarrowFilter() {
	sc := scope(id.RoleValidator, "0128", "")
	f := sc.NarrowFilter(report.Filter{ProvinceCode: "0155", LGUCode: "015501"})
	s.Equal("0128", f.ProvinceCode)
	s.Equal("015501", f.LGUCode, "unassigned levels pass through")
}

func (s *AuthzSuite) TestCapabilities() {
	s.True(scope(id.RoleEncoder, "", "").CanRegister())
	s.False(scope(id.RoleValidator, "", "").CanRegister())
	s.True(scope(id.RoleAdmin, "", "").CanRegister())

	s.False(scope(id.RoleEncoder, "", "").CanViewDashboard())
	s.False(scope(id.RoleValidator, "", "").CanViewDashboard())
	s.True(scope(id.RoleAdmin, "", "").CanViewDashboard())

	s.False(scope(id.RoleEncoder, "", "").CanExport())
	s.True(scope(id.RoleValidator, "", "").CanExport())
}

func (s *AuthzSuite) TestStatusMoves() {
	admin := scope(id.RoleAdmin, "", "")
	validator := scope(id.RoleValidator, "", "")
	encoder := scope(id.RoleEncoder, "", "")

	s.Run("admin moves anything", func() {
		s.True(admin.AllowsStatusMove(citizen.StatusCleanlisted, citizen.StatusPaid))
		s.True(admin.AllowsStatusMove(citizen.StatusPaid, citizen.StatusUnpaid))
	})

	s.Run("validator works the validation side", func() {
		s.True(validator.AllowsStatusMove(citizen.StatusEncoded, citizen.StatusValidated))
		s.True(validator.AllowsStatusMove(citizen.StatusValidated, citizen.StatusCleanlisted))
		s.False(validator.AllowsStatusMove(citizen.StatusCleanlisted, citizen.StatusPaid))
		s.False(validator.AllowsStatusMove(citizen.StatusPaid, citizen.StatusUnpaid))
	})

	s.Run("encoders move nothing", func() {
		s.False(encoder.AllowsStatusMove(citizen.StatusEncoded, citizen.StatusValidated))
	})
}
