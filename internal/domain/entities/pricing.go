package entities

import (
	"time"
)

// PricingEntry represents the price a practice charges for a procedure.
// One conceptual entry exists per (procedure, practice) pair; the import
// engine enforces that at the application level.
type PricingEntry struct {
	ID          string    `json:"id" db:"id"`
	ProcedureID string    `json:"procedure_id" db:"procedure_id"`
	PracticeID  string    `json:"practice_id" db:"practice_id"`
	Cost        float64   `json:"cost" db:"cost"`
	Currency    string    `json:"currency" db:"currency"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// PricingWithPractice is a pricing entry joined with its practice row
type PricingWithPractice struct {
	Entry    PricingEntry
	Practice Practice
}

// PricingOption is one practice's price for a procedure in a comparison result
type PricingOption struct {
	Practice      Practice  `json:"practice"`
	Cost          float64   `json:"cost"`
	Currency      string    `json:"currency"`
	Notes         string    `json:"notes,omitempty"`
	IsLowestPrice bool      `json:"is_lowest_price"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProcedureComparison is the price comparison for one procedure.
// PricingOptions is sorted ascending by cost; every option tying the minimum
// cost carries IsLowestPrice. An empty slice means no practice has priced the
// procedure yet.
type ProcedureComparison struct {
	Procedure      *Procedure      `json:"procedure"`
	PricingOptions []PricingOption `json:"pricing_options"`
}
