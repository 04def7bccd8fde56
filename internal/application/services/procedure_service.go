package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

// ProcedureService handles business logic for procedures
type ProcedureService struct {
	repo       repositories.ProcedureRepository
	searchRepo repositories.ProcedureSearchRepository
}

// NewProcedureService creates a new procedure service. searchRepo is optional.
func NewProcedureService(repo repositories.ProcedureRepository, searchRepo repositories.ProcedureSearchRepository) *ProcedureService {
	return &ProcedureService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// Create creates a new procedure and indexes it
func (s *ProcedureService) Create(ctx context.Context, procedure *entities.Procedure) error {
	if strings.TrimSpace(procedure.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}

	procedure.ID = uuid.NewString()
	procedure.CreatedAt = time.Now()

	if err := s.repo.Create(ctx, procedure); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, procedure); err != nil {
			// Index lags until the next rebuild (eventual consistency)
			log.Warn().Err(err).Str("procedure_id", procedure.ID).Msg("Failed to index procedure")
		}
	}

	return nil
}

// GetByID retrieves a procedure by ID
func (s *ProcedureService) GetByID(ctx context.Context, id string) (*entities.Procedure, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all procedures ordered by name
func (s *ProcedureService) List(ctx context.Context) ([]*entities.Procedure, error) {
	return s.repo.List(ctx)
}
