package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/geek-edu/courseledger/internal/core/domain"
	portsrepo "github.com/geek-edu/courseledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxEventRepository persists the audit trail to PostgreSQL.
type PgxEventRepository struct {
	Pool *pgxpool.Pool
}

// NewPgxEventRepository creates a new repository for audit events.
func NewPgxEventRepository(pool *pgxpool.Pool) *PgxEventRepository {
	return &PgxEventRepository{Pool: pool}
}

// Ensure implementation matches interface
var _ portsrepo.EventStore = (*PgxEventRepository)(nil)

// SaveEvent appends one event.
func (r *PgxEventRepository) SaveEvent(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `
		INSERT INTO events (event_id, event_type, occurred_at, payload)
		VALUES ($1, $2, $3, $4);
	`
	_, err = r.Pool.Exec(ctx, query, event.EventID, string(event.Type), event.OccurredAt, payload)
	if err != nil {
		return fmt.Errorf("failed to save event %s: %w", event.EventID, err)
	}
	return nil
}

// ListEvents returns the most recent events, newest first. limit <= 0 means
// no limit.
func (r *PgxEventRepository) ListEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	query := `
		SELECT event_id, event_type, occurred_at, payload
		FROM events
		ORDER BY occurred_at DESC, event_id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			event     domain.Event
			eventType string
			payload   json.RawMessage
		)
		if err := rows.Scan(&event.EventID, &eventType, &event.OccurredAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Type = domain.EventType(eventType)
		event.Payload = payload
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
