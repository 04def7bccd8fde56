package entities

import (
	"time"
)

// Pricing event types
const (
	PricingEventCreated  = "pricing.created"
	PricingEventImported = "pricing.imported"
)

// PricingEvent signals that pricing data for a procedure changed
type PricingEvent struct {
	ID          string    `json:"id"`
	EventType   string    `json:"event_type"`
	ProcedureID string    `json:"procedure_id"`
	PracticeID  string    `json:"practice_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
