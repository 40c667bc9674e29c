package audit

import "context"

// Store persists audit events. Append-only; the trail is never edited.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByCitizen(ctx context.Context, citizenID int64) ([]Event, error)
}
