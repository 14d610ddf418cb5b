package services

import (
	"context"
	"log/slog"

	"github.com/geek-edu/courseledger/internal/core/domain"
	portsrepo "github.com/geek-edu/courseledger/internal/core/ports/repositories"
)

// storeEventRecorder forwards emitted events to the configured store. A
// failing audit sink is logged, never propagated: durability of the trail is
// externally defined and must not unwind a committed operation.
type storeEventRecorder struct {
	store  portsrepo.EventStore
	logger *slog.Logger
}

// NewEventRecorder wraps an event store in the infallible recorder handed to
// the core services.
func NewEventRecorder(store portsrepo.EventStore, logger *slog.Logger) portsrepo.EventRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &storeEventRecorder{store: store, logger: logger}
}

func (r *storeEventRecorder) Record(ctx context.Context, event domain.Event) {
	if err := r.store.SaveEvent(ctx, event); err != nil {
		r.logger.Error("Failed to record event",
			slog.String("event_id", event.EventID),
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()))
	}
}
