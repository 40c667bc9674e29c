// Package report reduces citizen records into the dashboard's grouped tables.
// Everything here is pure: same records and filter in, same report out, so
// groupings can run concurrently without coordination.
package report

import (
	"time"

	"cims/internal/citizen"
)

// Filter narrows the record set before grouping. Unset fields are no-ops.
// Geography fields are applied literally and independently; the caller is
// responsible for cascading them consistently, and an inconsistent pair
// simply ANDs down to an empty set.
type Filter struct {
	RegisteredFrom *time.Time
	RegisteredTo   *time.Time
	PaidFrom       *time.Time
	PaidTo         *time.Time
	ProvinceCode   string
	LGUCode        string
	BarangayCode   string
	Statuses       []citizen.Status
	AgeMin         *int
	AgeMax         *int

	// TargetYears must be non-empty; handlers default it to the configured
	// benefit window before the filter reaches this package.
	TargetYears []int
}

// Apply runs the filter pipeline over records and returns the survivors.
// Stage order follows the reporting rules: registration dates, payment
// dates, geography, status set, calendar year, then the age window.
func (f Filter) Apply(records []citizen.Citizen) []citizen.Citizen {
	out := make([]citizen.Citizen, 0, len(records))
	for _, c := range records {
		if f.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func (f Filter) matches(c citizen.Citizen) bool {
	if f.RegisteredFrom != nil && c.CreatedAt.Before(*f.RegisteredFrom) {
		return false
	}
	if f.RegisteredTo != nil && c.CreatedAt.After(*f.RegisteredTo) {
		return false
	}

	if f.PaidFrom != nil && (c.PaymentDate == nil || c.PaymentDate.Before(*f.PaidFrom)) {
		return false
	}
	if f.PaidTo != nil && (c.PaymentDate == nil || c.PaymentDate.After(*f.PaidTo)) {
		return false
	}

	if f.ProvinceCode != "" && c.ProvinceCode != f.ProvinceCode {
		return false
	}
	if f.LGUCode != "" && c.LGUCode != f.LGUCode {
		return false
	}
	if f.BarangayCode != "" && c.BarangayCode != f.BarangayCode {
		return false
	}

	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, c.Status) {
		return false
	}

	if len(f.TargetYears) > 0 && !containsInt(f.TargetYears, c.CalendarYear) {
		return false
	}

	// The age window passes if any target year puts the citizen inside it.
	// A multi-year filter is permissive, mirroring max-age crediting.
	if f.AgeMin != nil || f.AgeMax != nil {
		if !f.ageMatches(c) {
			return false
		}
	}
	return true
}

func (f Filter) ageMatches(c citizen.Citizen) bool {
	for _, y := range f.TargetYears {
		age := y - c.BirthDate.Year()
		if f.AgeMin != nil && age < *f.AgeMin {
			continue
		}
		if f.AgeMax != nil && age > *f.AgeMax {
			continue
		}
		return true
	}
	return false
}

func containsStatus(set []citizen.Status, s citizen.Status) bool {
	for _, st := range set {
		if st == s {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, n := range set {
		if n == v {
			return true
		}
	}
	return false
}
