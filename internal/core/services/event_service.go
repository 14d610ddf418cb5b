package services

import (
	"context"
	"fmt"

	"github.com/geek-edu/courseledger/internal/core/domain"
	portsrepo "github.com/geek-edu/courseledger/internal/core/ports/repositories"
)

// EventService exposes the recorded audit trail read-side.
type EventService struct {
	store portsrepo.EventStore
}

// NewEventService creates a new EventService.
func NewEventService(store portsrepo.EventStore) *EventService {
	return &EventService{store: store}
}

// ListEvents returns the most recent events, newest first.
func (s *EventService) ListEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	events, err := s.store.ListEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		return []domain.Event{}, nil
	}
	return events, nil
}
