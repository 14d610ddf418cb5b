package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType names the events that form the durable audit trail. External
// systems observe these; payload field order and types are part of the
// compatibility surface.
type EventType string

const (
	EventInitialDistributionCompleted EventType = "InitialDistributionCompleted"
	EventTokensPurchased              EventType = "TokensPurchased"
	EventTokensSold                   EventType = "TokensSold"
	EventCertificateMinted            EventType = "CertificateMinted"
	EventCourseAdded                  EventType = "CourseAdded"
	EventCourseUpdated                EventType = "CourseUpdated"
	EventCoursePurchased              EventType = "CoursePurchased"
)

// Event is the envelope every emitted event travels in.
type Event struct {
	EventID    string    `json:"eventId"`
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// NewEvent wraps a payload in a fresh envelope.
func NewEvent(eventType EventType, payload any) Event {
	return Event{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// InitialDistributionCompleted is emitted exactly once per ledger instance.
type InitialDistributionCompleted struct {
	Team      AccountID `json:"team"`
	Marketing AccountID `json:"marketing"`
	Community AccountID `json:"community"`
}

// TokensPurchased is emitted when reserve currency is exchanged for tokens.
type TokensPurchased struct {
	Buyer        AccountID       `json:"buyer"`
	ReservePaid  decimal.Decimal `json:"reservePaid"`
	TokensMinted decimal.Decimal `json:"tokensMinted"`
}

// TokensSold is emitted when tokens are exchanged back for reserve currency.
type TokensSold struct {
	Seller      AccountID       `json:"seller"`
	TokensSold  decimal.Decimal `json:"tokensSold"`
	ReservePaid decimal.Decimal `json:"reservePaid"`
}

// CertificateMinted is emitted for every certificate issued.
type CertificateMinted struct {
	CertificateID uint64    `json:"certificateId"`
	CourseID      string    `json:"courseId"`
	Owner         AccountID `json:"owner"`
}

// CourseAdded is emitted when a course enters the catalog.
type CourseAdded struct {
	CourseID   uint64 `json:"courseId"`
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
}

// CourseUpdated is emitted when a catalog entry is rewritten.
type CourseUpdated struct {
	CourseID      uint64          `json:"courseId"`
	OldExternalID string          `json:"oldExternalId"`
	NewExternalID string          `json:"newExternalId"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	IsActive      bool            `json:"isActive"`
}

// CoursePurchased is emitted after a purchase has debited the buyer and the
// completion certificate has been minted.
type CoursePurchased struct {
	Buyer      AccountID       `json:"buyer"`
	CourseID   uint64          `json:"courseId"`
	ExternalID string          `json:"externalId"`
	Price      decimal.Decimal `json:"price"`
}
