// Package authz is the capability layer over citizen data. What the source
// system expressed as database row policies lives here as explicit checks:
// a staff scope (role plus geographic assignment) gates which records a
// request may touch and which workflow moves it may make.
package authz

import (
	"cims/internal/citizen"
	"cims/internal/report"
	id "cims/pkg/domain"
)

// Scope is the authenticated staff capability attached to every request.
// Province/LGU codes are the staff member's assignment; empty means
// unrestricted at that level (admins typically carry no assignment).
type Scope struct {
	StaffID      id.StaffID
	Role         id.Role
	ProvinceCode string
	LGUCode      string
}

// AllowsCitizen reports whether the scope may see the given record.
func (s Scope) AllowsCitizen(c *citizen.Citizen) bool {
	if s.ProvinceCode != "" && c.ProvinceCode != s.ProvinceCode {
		return false
	}
	if s.LGUCode != "" && c.LGUCode != s.LGUCode {
		return false
	}
	return true
}

// NarrowQuery clamps a store query to the assignment. A caller-supplied
// geography filter outside the assignment is overwritten, not merged; the
// scope always wins.
func (s Scope) NarrowQuery(q citizen.Query) citizen.Query {
	if s.ProvinceCode != "" {
		q.ProvinceCode = s.ProvinceCode
	}
	if s.LGUCode != "" {
		q.LGUCode = s.LGUCode
	}
	return q
}

// NarrowFilter clamps a report filter the same way.
func (s Scope) NarrowFilter(f report.Filter) report.Filter {
	if s.ProvinceCode != "" {
		f.ProvinceCode = s.ProvinceCode
	}
	if s.LGUCode != "" {
		f.LGUCode = s.LGUCode
	}
	return f
}

// CanRegister reports whether the scope may create registrations.
func (s Scope) CanRegister() bool {
	return s.Role == id.RoleEncoder || s.Role == id.RoleAdmin
}

// CanViewDashboard gates the aggregate reports.
func (s Scope) CanViewDashboard() bool {
	return s.Role == id.RoleAdmin
}

// CanDelete gates hard deletion of registrations.
func (s Scope) CanDelete() bool {
	return s.Role == id.RoleAdmin
}

// CanExport gates CSV export of the citizen list.
func (s Scope) CanExport() bool {
	return s.Role == id.RoleValidator || s.Role == id.RoleAdmin
}

// validatorMoves are the workflow moves a validator may make. Encoders make
// none; admins make any.
var validatorMoves = map[citizen.Status][]citizen.Status{
	citizen.StatusEncoded: {
		citizen.StatusValidated,
		citizen.StatusWaitlisted,
		citizen.StatusDisqualified,
	},
	citizen.StatusValidated: {
		citizen.StatusCleanlisted,
		citizen.StatusWaitlisted,
		citizen.StatusCompliance,
		citizen.StatusDisqualified,
	},
	citizen.StatusCompliance: {
		citizen.StatusValidated,
		citizen.StatusDisqualified,
	},
}

// AllowsStatusMove reports whether the scope may move a record from one
// workflow status to another. Payment-side moves (Paid, Unpaid) are
// admin-only; validators handle the validation side of the board.
func (s Scope) AllowsStatusMove(from, to citizen.Status) bool {
	switch s.Role {
	case id.RoleAdmin:
		return true
	case id.RoleValidator:
		for _, allowed := range validatorMoves[from] {
			if allowed == to {
				return true
			}
		}
	}
	return false
}
