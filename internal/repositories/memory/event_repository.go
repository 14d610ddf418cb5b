package memory

import (
	"context"
	"sync"

	"github.com/geek-edu/courseledger/internal/core/domain"
	portsrepo "github.com/geek-edu/courseledger/internal/core/ports/repositories"
)

// EventRepository is the in-process event store used when no database is
// configured, and the default sink in tests. Append-only.
type EventRepository struct {
	mu     sync.RWMutex
	events []domain.Event
}

// NewEventRepository creates an empty in-memory event store.
func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

// Ensure implementation matches interface
var _ portsrepo.EventStore = (*EventRepository)(nil)

// SaveEvent appends one event.
func (r *EventRepository) SaveEvent(_ context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// ListEvents returns the most recent events, newest first. limit <= 0 means
// no limit.
func (r *EventRepository) ListEvents(_ context.Context, limit int) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.events)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}
