// Package citizen holds the registered-senior domain model and its workflow
// status vocabulary.
package citizen

import (
	"fmt"
	"time"

	"cims/internal/benefit"
)

// Status tags a registration's position in the disbursement workflow. Moves
// between statuses are operator-controlled; the model treats the value as an
// opaque classification, not an ordered state machine.
type Status string

const (
	StatusEncoded      Status = "encoded"
	StatusValidated    Status = "validated"
	StatusCleanlisted  Status = "cleanlisted"
	StatusWaitlisted   Status = "waitlisted"
	StatusPaid         Status = "paid"
	StatusUnpaid       Status = "unpaid"
	StatusCompliance   Status = "compliance"
	StatusDisqualified Status = "disqualified"
)

// AllStatuses lists every workflow status in canonical report order.
var AllStatuses = [8]Status{
	StatusEncoded,
	StatusValidated,
	StatusCleanlisted,
	StatusWaitlisted,
	StatusPaid,
	StatusUnpaid,
	StatusCompliance,
	StatusDisqualified,
}

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	for _, known := range AllStatuses {
		if Status(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown status: %s", s)
}

// Sex is the registered sex of a citizen.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex validates a sex string.
func ParseSex(s string) (Sex, error) {
	switch Sex(s) {
	case SexMale, SexFemale:
		return Sex(s), nil
	}
	return "", fmt.Errorf("unknown sex: %s", s)
}

// Citizen is a registered senior. CalendarYear is derived from the birth date
// on every construction and re-read; it is stored for query pushdown but
// never trusted across schema generations.
type Citizen struct {
	ID           int64
	FirstName    string
	MiddleName   string
	LastName     string
	BirthDate    time.Time
	Sex          Sex
	Status       Status
	ProvinceCode string
	LGUCode      string
	BarangayCode string
	PaymentDate  *time.Time
	Remarks      string
	CalendarYear int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Normalize recomputes derived fields from their inputs.
func (c *Citizen) Normalize() {
	c.CalendarYear = benefit.CalendarYearFor(c.BirthDate)
}

// Validate checks the invariants the store relies on. Birth dates must exist
// and may not be in the future relative to now.
func (c *Citizen) Validate(now time.Time) error {
	if c.BirthDate.IsZero() {
		return fmt.Errorf("birth date is required")
	}
	if c.BirthDate.After(now) {
		return fmt.Errorf("birth date may not be in the future")
	}
	if _, err := ParseSex(string(c.Sex)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(c.Status)); err != nil {
		return err
	}
	if c.ProvinceCode == "" || c.LGUCode == "" || c.BarangayCode == "" {
		return fmt.Errorf("province, LGU, and barangay codes are required")
	}
	if c.LastName == "" {
		return fmt.Errorf("last name is required")
	}
	return nil
}
