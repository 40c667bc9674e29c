package citizen

import (
	"context"
	"time"
)

// Query narrows a List call. Zero-valued fields are no-ops. These are the
// predicates the Postgres store can push down; the report pipeline re-applies
// the full filter set over whatever comes back, so a store that ignores a
// predicate is slower, not wrong.
type Query struct {
	ProvinceCode   string
	LGUCode        string
	BarangayCode   string
	Statuses       []Status
	RegisteredFrom *time.Time
	RegisteredTo   *time.Time
	Limit          int
	Offset         int
}

// Matches applies the query predicates in memory. Shared by the in-memory
// store and tests.
func (q Query) Matches(c Citizen) bool {
	if q.ProvinceCode != "" && c.ProvinceCode != q.ProvinceCode {
		return false
	}
	if q.LGUCode != "" && c.LGUCode != q.LGUCode {
		return false
	}
	if q.BarangayCode != "" && c.BarangayCode != q.BarangayCode {
		return false
	}
	if len(q.Statuses) > 0 {
		found := false
		for _, st := range q.Statuses {
			if c.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.RegisteredFrom != nil && c.CreatedAt.Before(*q.RegisteredFrom) {
		return false
	}
	if q.RegisteredTo != nil && c.CreatedAt.After(*q.RegisteredTo) {
		return false
	}
	return true
}

// Store is interface-driven so services stay testable against the in-memory
// implementation while production runs on Postgres.
type Store interface {
	Create(ctx context.Context, c *Citizen) error
	Update(ctx context.Context, c *Citizen) error
	FindByID(ctx context.Context, id int64) (*Citizen, error)
	List(ctx context.Context, q Query) ([]Citizen, error)
	Count(ctx context.Context, q Query) (int, error)
	Delete(ctx context.Context, id int64) error
}
