// Package audit records who did what to which registration. Events are
// emitted by services, buffered in-process, and drained into the audit store
// by a background worker.
package audit

import (
	"time"

	id "cims/pkg/domain"
)

// Action names an auditable operation.
type Action string

const (
	ActionCitizenRegistered Action = "citizen_registered"
	ActionStatusChanged     Action = "status_changed"
	ActionCitizenDeleted    Action = "citizen_deleted"
	ActionListExported      Action = "list_exported"
)

// Event is one audit trail entry.
type Event struct {
	ID         int64
	Action     Action
	ActorID    id.StaffID
	CitizenID  int64
	FromStatus string
	ToStatus   string
	Detail     string
	RequestID  string
	Timestamp  time.Time
}
