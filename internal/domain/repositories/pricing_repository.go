package repositories

import (
	"context"

	"github.com/zatekoja/careprice/internal/domain/entities"
)

// PricingRepository defines the interface for procedure pricing operations
type PricingRepository interface {
	// Create creates a new pricing entry
	Create(ctx context.Context, entry *entities.PricingEntry) error

	// GetByProcedureAndPractice retrieves the pricing entry for a (procedure, practice) pair
	GetByProcedureAndPractice(ctx context.Context, procedureID, practiceID string) (*entities.PricingEntry, error)

	// Update overwrites cost, currency and notes of an existing entry and
	// refreshes its updated timestamp
	Update(ctx context.Context, entry *entities.PricingEntry) error

	// ListByProcedureWithPractice retrieves every pricing entry for a procedure
	// joined with its practice, ordered by cost ascending
	ListByProcedureWithPractice(ctx context.Context, procedureID string) ([]*entities.PricingWithPractice, error)
}
