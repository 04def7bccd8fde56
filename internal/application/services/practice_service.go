package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

// PracticeService handles business logic for medical practices
type PracticeService struct {
	repo repositories.PracticeRepository
}

// NewPracticeService creates a new practice service
func NewPracticeService(repo repositories.PracticeRepository) *PracticeService {
	return &PracticeService{repo: repo}
}

// Create creates a new practice
func (s *PracticeService) Create(ctx context.Context, practice *entities.Practice) error {
	if strings.TrimSpace(practice.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}

	practice.ID = uuid.NewString()
	practice.CreatedAt = time.Now()

	return s.repo.Create(ctx, practice)
}

// GetByID retrieves a practice by ID
func (s *PracticeService) GetByID(ctx context.Context, id string) (*entities.Practice, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all practices ordered by name
func (s *PracticeService) List(ctx context.Context) ([]*entities.Practice, error) {
	return s.repo.List(ctx)
}
