package dto

import (
	"time"

	"github.com/geek-edu/courseledger/internal/core/domain"
)

// EventResponse is one entry of the audit trail.
type EventResponse struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// ToEventResponse converts a domain.Event to its response DTO.
func ToEventResponse(event domain.Event) EventResponse {
	return EventResponse{
		EventID:    event.EventID,
		Type:       string(event.Type),
		OccurredAt: event.OccurredAt,
		Payload:    event.Payload,
	}
}

// ToListEventResponse converts a slice of events to response DTOs.
func ToListEventResponse(events []domain.Event) []EventResponse {
	res := make([]EventResponse, len(events))
	for i, e := range events {
		res[i] = ToEventResponse(e)
	}
	return res
}
