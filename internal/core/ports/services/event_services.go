package services

import (
	"context"

	"github.com/geek-edu/courseledger/internal/core/domain"
)

// EventReaderSvc exposes the recorded audit trail.
type EventReaderSvc interface {
	// ListEvents returns the most recent events, newest first. limit <= 0
	// means no limit.
	ListEvents(ctx context.Context, limit int) ([]domain.Event, error)
}
