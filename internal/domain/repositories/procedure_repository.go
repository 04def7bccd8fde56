package repositories

import (
	"context"

	"github.com/zatekoja/careprice/internal/domain/entities"
)

// ProcedureRepository defines the interface for procedure data operations
type ProcedureRepository interface {
	// Create creates a new procedure
	Create(ctx context.Context, procedure *entities.Procedure) error

	// GetByID retrieves a procedure by ID
	GetByID(ctx context.Context, id string) (*entities.Procedure, error)

	// GetByName retrieves a procedure by exact (case-sensitive) name
	GetByName(ctx context.Context, name string) (*entities.Procedure, error)

	// List retrieves all procedures ordered by name ascending
	List(ctx context.Context) ([]*entities.Procedure, error)

	// Search retrieves procedures matching the filter, ordered by name ascending
	Search(ctx context.Context, filter ProcedureSearchFilter) ([]*entities.Procedure, error)
}

// ProcedureSearchFilter defines the procedure search parameters.
// Query matches the procedure name as a case-insensitive substring;
// Category, when set, must match exactly.
type ProcedureSearchFilter struct {
	Query    string
	Category string
	Limit    int
}

// ProcedureSearchRepository defines the search-index operations (e.g. Typesense)
type ProcedureSearchRepository interface {
	// Index adds or replaces a procedure in the search index
	Index(ctx context.Context, procedure *entities.Procedure) error

	// Search searches indexed procedures
	Search(ctx context.Context, filter ProcedureSearchFilter) ([]*entities.Procedure, error)

	// Delete removes a procedure from the index
	Delete(ctx context.Context, id string) error
}
