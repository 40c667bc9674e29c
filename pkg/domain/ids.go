// Package domain holds small identity primitives shared by services,
// middleware, and tests without dragging in feature packages.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// StaffID identifies a staff account (encoder, validator, or admin).
type StaffID uuid.UUID

// ParseStaffID validates and returns a StaffID.
func ParseStaffID(s string) (StaffID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return StaffID{}, fmt.Errorf("invalid staff id: %w", err)
	}
	return StaffID(u), nil
}

func (id StaffID) String() string { return uuid.UUID(id).String() }

// IsNil returns true for the zero StaffID.
func (id StaffID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
