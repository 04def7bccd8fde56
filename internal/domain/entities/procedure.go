package entities

import (
	"time"
)

// Procedure represents a named medical service with zero or more prices across practices
type Procedure struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Category    string    `json:"category,omitempty" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
