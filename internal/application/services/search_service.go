package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

// DefaultSearchLimit caps result sets when the caller does not ask for a size
const DefaultSearchLimit = 50

// SearchService handles procedure search
type SearchService struct {
	procedureRepo repositories.ProcedureRepository
	searchRepo    repositories.ProcedureSearchRepository
}

// NewSearchService creates a new search service. searchRepo may be nil, in
// which case every search runs against the database.
func NewSearchService(procedureRepo repositories.ProcedureRepository, searchRepo repositories.ProcedureSearchRepository) *SearchService {
	return &SearchService{
		procedureRepo: procedureRepo,
		searchRepo:    searchRepo,
	}
}

// Search finds procedures whose name contains the query, case-insensitively,
// optionally restricted to an exact category. Results come back ordered by
// name ascending.
func (s *SearchService) Search(ctx context.Context, query, category string, limit int) ([]*entities.Procedure, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	filter := repositories.ProcedureSearchFilter{
		Query:    query,
		Category: category,
		Limit:    limit,
	}

	if s.searchRepo != nil {
		procedures, err := s.searchRepo.Search(ctx, filter)
		if err == nil {
			return procedures, nil
		}
		log.Warn().Err(err).Str("query", query).Msg("Search index unavailable, falling back to database")
	}

	return s.procedureRepo.Search(ctx, filter)
}
