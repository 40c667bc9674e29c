package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	id "cims/pkg/domain"
)

// PostgresStore appends audit events to the audit_events table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_events (action, actor_id, citizen_id, from_status, to_status, detail, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.Action, event.ActorID.String(), event.CitizenID,
		event.FromStatus, event.ToStatus, event.Detail, event.RequestID, event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByCitizen(ctx context.Context, citizenID int64) ([]Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, action, actor_id, citizen_id, from_status, to_status, detail, request_id, created_at
		FROM audit_events WHERE citizen_id = $1 ORDER BY id`, citizenID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var actor string
		if err := rows.Scan(&e.ID, &e.Action, &actor, &e.CitizenID,
			&e.FromStatus, &e.ToStatus, &e.Detail, &e.RequestID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if u, err := uuid.Parse(actor); err == nil {
			e.ActorID = id.StaffID(u)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return out, nil
}
