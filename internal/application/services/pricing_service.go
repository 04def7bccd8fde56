package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/providers"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

// PricingService handles individual pricing entry writes
type PricingService struct {
	procedureRepo repositories.ProcedureRepository
	practiceRepo  repositories.PracticeRepository
	pricingRepo   repositories.PricingRepository
	cache         providers.CacheProvider
	eventBus      providers.EventBus
}

// NewPricingService creates a new pricing service. cache and eventBus are
// optional.
func NewPricingService(
	procedureRepo repositories.ProcedureRepository,
	practiceRepo repositories.PracticeRepository,
	pricingRepo repositories.PricingRepository,
	cache providers.CacheProvider,
	eventBus providers.EventBus,
) *PricingService {
	return &PricingService{
		procedureRepo: procedureRepo,
		practiceRepo:  practiceRepo,
		pricingRepo:   pricingRepo,
		cache:         cache,
		eventBus:      eventBus,
	}
}

// Create records the price a practice charges for a procedure. Both the
// procedure and the practice must already exist. An existing entry for the
// pair is overwritten rather than duplicated.
func (s *PricingService) Create(ctx context.Context, entry *entities.PricingEntry) (*entities.PricingEntry, error) {
	if entry.ProcedureID == "" {
		return nil, apperrors.NewValidationError("procedure_id is required")
	}
	if entry.PracticeID == "" {
		return nil, apperrors.NewValidationError("practice_id is required")
	}
	if entry.Cost <= 0 {
		return nil, apperrors.NewValidationError("cost must be positive")
	}
	if entry.Currency == "" {
		entry.Currency = DefaultCurrency
	}

	if _, err := s.procedureRepo.GetByID(ctx, entry.ProcedureID); err != nil {
		return nil, err
	}
	if _, err := s.practiceRepo.GetByID(ctx, entry.PracticeID); err != nil {
		return nil, err
	}

	existing, err := s.pricingRepo.GetByProcedureAndPractice(ctx, entry.ProcedureID, entry.PracticeID)
	switch {
	case err == nil:
		existing.Cost = entry.Cost
		existing.Currency = entry.Currency
		existing.Notes = entry.Notes
		if err := s.pricingRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		entry = existing
	case apperrors.IsNotFound(err):
		now := time.Now()
		entry.ID = uuid.NewString()
		entry.UpdatedAt = now
		entry.CreatedAt = now
		if err := s.pricingRepo.Create(ctx, entry); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, comparisonCacheKey(entry.ProcedureID)); err != nil {
			log.Warn().Err(err).Str("procedure_id", entry.ProcedureID).Msg("Failed to invalidate comparison cache")
		}
	}

	if s.eventBus != nil {
		event := &entities.PricingEvent{
			ID:          uuid.NewString(),
			EventType:   entities.PricingEventCreated,
			ProcedureID: entry.ProcedureID,
			PracticeID:  entry.PracticeID,
			OccurredAt:  time.Now(),
		}
		if err := s.eventBus.Publish(ctx, providers.EventChannelPricingUpdates, event); err != nil {
			log.Warn().Err(err).Str("procedure_id", entry.ProcedureID).Msg("Failed to publish pricing event")
		}
	}

	return entry, nil
}
