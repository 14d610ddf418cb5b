package repositories

import (
	"context"

	"github.com/geek-edu/courseledger/internal/core/domain"
)

// EventStore persists the audit trail of emitted events.
type EventStore interface {
	// SaveEvent appends one event.
	SaveEvent(ctx context.Context, event domain.Event) error

	// ListEvents returns the most recent events, newest first. limit <= 0
	// means no limit.
	ListEvents(ctx context.Context, limit int) ([]domain.Event, error)
}

// EventRecorder is the emission side handed to the core services. Recording
// is infallible from the caller's point of view: durability of the trail is
// the store's concern, and a failing store must not unwind a committed
// operation.
type EventRecorder interface {
	Record(ctx context.Context, event domain.Event)
}
