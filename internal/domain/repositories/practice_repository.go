package repositories

import (
	"context"

	"github.com/zatekoja/careprice/internal/domain/entities"
)

// PracticeRepository defines the interface for practice data operations
type PracticeRepository interface {
	// Create creates a new practice
	Create(ctx context.Context, practice *entities.Practice) error

	// GetByID retrieves a practice by ID
	GetByID(ctx context.Context, id string) (*entities.Practice, error)

	// GetByName retrieves a practice by exact (case-sensitive) name
	GetByName(ctx context.Context, name string) (*entities.Practice, error)

	// List retrieves all practices ordered by name ascending
	List(ctx context.Context) ([]*entities.Practice, error)
}
