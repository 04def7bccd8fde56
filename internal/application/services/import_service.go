package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/providers"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

// DefaultCurrency is assumed when an import record omits one
const DefaultCurrency = "USD"

// ImportService executes bulk pricing imports. Each batch runs in a single
// transaction: entities are resolved by exact name and created when missing,
// and pricing entries are created or overwritten per (procedure, practice)
// pair. A failure anywhere rolls the whole batch back.
type ImportService struct {
	txManager  repositories.TransactionManager
	cache      providers.CacheProvider
	eventBus   providers.EventBus
	searchRepo repositories.ProcedureSearchRepository
}

// NewImportService creates a new import service. cache, eventBus and
// searchRepo are optional.
func NewImportService(
	txManager repositories.TransactionManager,
	cache providers.CacheProvider,
	eventBus providers.EventBus,
	searchRepo repositories.ProcedureSearchRepository,
) *ImportService {
	return &ImportService{
		txManager:  txManager,
		cache:      cache,
		eventBus:   eventBus,
		searchRepo: searchRepo,
	}
}

// Import runs a bulk import batch and reports how many procedures and
// practices were created and how many pricing entries were written. Updated
// pricing entries count the same as created ones; re-running an identical
// batch therefore reports zero new entities but the full entry count.
func (s *ImportService) Import(ctx context.Context, batch *entities.ImportBatch) (*entities.ImportSummary, error) {
	if err := validateBatch(batch); err != nil {
		return nil, err
	}

	summary := &entities.ImportSummary{}
	createdProcedures := []*entities.Procedure{}
	touchedProcedures := map[string]struct{}{}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos repositories.RepositorySet) error {
		for _, importProc := range batch.Procedures {
			procedure, err := resolveProcedure(ctx, repos.Procedures, importProc)
			if err != nil {
				return err
			}
			if procedure.created {
				summary.ImportedProcedures++
				createdProcedures = append(createdProcedures, procedure.entity)
			}
			touchedProcedures[procedure.entity.ID] = struct{}{}

			for _, importPrac := range importProc.Practices {
				practice, err := resolvePractice(ctx, repos.Practices, importPrac)
				if err != nil {
					return err
				}
				if practice.created {
					summary.ImportedPractices++
				}

				if err := upsertPricing(ctx, repos.Pricing, procedure.entity.ID, practice.entity.ID, importPrac); err != nil {
					return err
				}
				summary.ImportedPricingEntries++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterImport(ctx, createdProcedures, touchedProcedures)

	log.Info().
		Int("procedures", summary.ImportedProcedures).
		Int("practices", summary.ImportedPractices).
		Int("pricing_entries", summary.ImportedPricingEntries).
		Msg("Bulk import committed")

	return summary, nil
}

// validateBatch rejects a batch before any database work happens
func validateBatch(batch *entities.ImportBatch) error {
	if batch == nil || len(batch.Procedures) == 0 {
		return apperrors.NewValidationError("import batch must contain at least one procedure")
	}

	for i, proc := range batch.Procedures {
		if strings.TrimSpace(proc.Name) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("procedure %d: name is required", i))
		}
		for j, prac := range proc.Practices {
			if strings.TrimSpace(prac.PracticeName) == "" {
				return apperrors.NewValidationError(fmt.Sprintf("procedure %d, practice %d: practice_name is required", i, j))
			}
			if prac.Cost <= 0 {
				return apperrors.NewValidationError(fmt.Sprintf("procedure %d, practice %d: cost must be positive", i, j))
			}
		}
	}
	return nil
}

type resolvedProcedure struct {
	entity  *entities.Procedure
	created bool
}

type resolvedPractice struct {
	entity  *entities.Practice
	created bool
}

// resolveProcedure finds a procedure by exact name or creates it. An existing
// procedure keeps its stored description and category untouched.
func resolveProcedure(ctx context.Context, repo repositories.ProcedureRepository, importProc entities.ImportProcedure) (*resolvedProcedure, error) {
	existing, err := repo.GetByName(ctx, importProc.Name)
	if err == nil {
		return &resolvedProcedure{entity: existing}, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	procedure := &entities.Procedure{
		ID:          uuid.NewString(),
		Name:        importProc.Name,
		Description: importProc.Description,
		Category:    importProc.Category,
		CreatedAt:   time.Now(),
	}
	if err := repo.Create(ctx, procedure); err != nil {
		return nil, err
	}
	return &resolvedProcedure{entity: procedure, created: true}, nil
}

// resolvePractice finds a practice by exact name or creates it. An existing
// practice keeps its stored contact details untouched.
func resolvePractice(ctx context.Context, repo repositories.PracticeRepository, importPrac entities.ImportPractice) (*resolvedPractice, error) {
	existing, err := repo.GetByName(ctx, importPrac.PracticeName)
	if err == nil {
		return &resolvedPractice{entity: existing}, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	practice := &entities.Practice{
		ID:        uuid.NewString(),
		Name:      importPrac.PracticeName,
		Address:   importPrac.PracticeAddress,
		Phone:     importPrac.PracticePhone,
		Email:     importPrac.PracticeEmail,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, practice); err != nil {
		return nil, err
	}
	return &resolvedPractice{entity: practice, created: true}, nil
}

// upsertPricing writes the price for a (procedure, practice) pair, overwriting
// any existing entry so a later record in the batch wins.
func upsertPricing(ctx context.Context, repo repositories.PricingRepository, procedureID, practiceID string, importPrac entities.ImportPractice) error {
	currency := importPrac.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	existing, err := repo.GetByProcedureAndPractice(ctx, procedureID, practiceID)
	if err == nil {
		existing.Cost = importPrac.Cost
		existing.Currency = currency
		existing.Notes = importPrac.Notes
		return repo.Update(ctx, existing)
	}
	if !apperrors.IsNotFound(err) {
		return err
	}

	now := time.Now()
	return repo.Create(ctx, &entities.PricingEntry{
		ID:          uuid.NewString(),
		ProcedureID: procedureID,
		PracticeID:  practiceID,
		Cost:        importPrac.Cost,
		Currency:    currency,
		Notes:       importPrac.Notes,
		UpdatedAt:   now,
		CreatedAt:   now,
	})
}

// afterImport runs the best-effort side effects of a committed batch: cache
// invalidation, change events and search indexing. Failures are logged rather
// than surfaced; the batch itself is already committed.
func (s *ImportService) afterImport(ctx context.Context, createdProcedures []*entities.Procedure, touchedProcedures map[string]struct{}) {
	for procedureID := range touchedProcedures {
		if s.cache != nil {
			if err := s.cache.Delete(ctx, comparisonCacheKey(procedureID)); err != nil {
				log.Warn().Err(err).Str("procedure_id", procedureID).Msg("Failed to invalidate comparison cache")
			}
		}
		if s.eventBus != nil {
			event := &entities.PricingEvent{
				ID:          uuid.NewString(),
				EventType:   entities.PricingEventImported,
				ProcedureID: procedureID,
				OccurredAt:  time.Now(),
			}
			if err := s.eventBus.Publish(ctx, providers.EventChannelPricingUpdates, event); err != nil {
				log.Warn().Err(err).Str("procedure_id", procedureID).Msg("Failed to publish import event")
			}
		}
	}

	if s.searchRepo != nil {
		for _, procedure := range createdProcedures {
			if err := s.searchRepo.Index(ctx, procedure); err != nil {
				log.Warn().Err(err).Str("procedure_id", procedure.ID).Msg("Failed to index imported procedure")
			}
		}
	}
}
