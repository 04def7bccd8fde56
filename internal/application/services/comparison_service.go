package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/providers"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	"github.com/zatekoja/careprice/internal/infrastructure/observability"
)

// comparisonCacheTTLSeconds bounds staleness of cached comparisons between
// pricing updates that bypass invalidation.
const comparisonCacheTTLSeconds = 300

// comparisonCacheKey builds the cache key for a procedure's comparison
func comparisonCacheKey(procedureID string) string {
	return fmt.Sprintf("comparison:procedure:%s", procedureID)
}

// ComparisonService assembles price comparisons for procedures
type ComparisonService struct {
	procedureRepo repositories.ProcedureRepository
	pricingRepo   repositories.PricingRepository
	cache         providers.CacheProvider
	metrics       *observability.Metrics
}

// NewComparisonService creates a new comparison service
func NewComparisonService(
	procedureRepo repositories.ProcedureRepository,
	pricingRepo   repositories.PricingRepository,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
) *ComparisonService {
	return &ComparisonService{
		procedureRepo: procedureRepo,
		pricingRepo:   pricingRepo,
		cache:         cache,
		metrics:       metrics,
	}
}

// Compare returns every practice's price for a procedure, cheapest first,
// with all options tying the minimum cost flagged as lowest. A procedure
// nobody has priced yet yields an empty options list, not an error.
func (s *ComparisonService) Compare(ctx context.Context, procedureID string) (*entities.ProcedureComparison, error) {
	cacheKey := comparisonCacheKey(procedureID)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached entities.ProcedureComparison
			uerr := json.Unmarshal(data, &cached)
			if uerr == nil {
				if s.metrics != nil {
					observability.RecordCacheHit(ctx, s.metrics, cacheKey)
				}
				return &cached, nil
			}
			log.Warn().Err(uerr).Str("key", cacheKey).Msg("Failed to decode cached comparison")
		}
		if s.metrics != nil {
			observability.RecordCacheMiss(ctx, s.metrics, cacheKey)
		}
	}

	procedure, err := s.procedureRepo.GetByID(ctx, procedureID)
	if err != nil {
		return nil, err
	}

	pricings, err := s.pricingRepo.ListByProcedureWithPractice(ctx, procedureID)
	if err != nil {
		return nil, err
	}

	options := make([]entities.PricingOption, 0, len(pricings))
	for _, p := range pricings {
		options = append(options, entities.PricingOption{
			Practice:  p.Practice,
			Cost:      p.Entry.Cost,
			Currency:  p.Entry.Currency,
			Notes:     p.Entry.Notes,
			UpdatedAt: p.Entry.UpdatedAt,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Cost < options[j].Cost
	})

	// Every option sharing the minimum cost is a lowest-price option,
	// regardless of currency.
	if len(options) > 0 {
		lowest := options[0].Cost
		for i := range options {
			if options[i].Cost == lowest {
				options[i].IsLowestPrice = true
			}
		}
	}

	comparison := &entities.ProcedureComparison{
		Procedure:      procedure,
		PricingOptions: options,
	}

	if s.cache != nil {
		if data, err := json.Marshal(comparison); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, comparisonCacheTTLSeconds); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache comparison")
			}
		}
	}

	return comparison, nil
}

// Invalidate drops the cached comparison for a procedure
func (s *ComparisonService) Invalidate(ctx context.Context, procedureID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, comparisonCacheKey(procedureID))
}
