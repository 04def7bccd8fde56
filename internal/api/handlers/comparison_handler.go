package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/careprice/internal/domain/entities"
)

// ComparisonService defines the comparison operation used by the handler.
type ComparisonService interface {
	Compare(ctx context.Context, procedureID string) (*entities.ProcedureComparison, error)
}

// ComparisonHandler handles price comparison HTTP requests
type ComparisonHandler struct {
	service ComparisonService
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(service ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{service: service}
}

// GetComparison handles GET /api/procedures/{id}/comparison
func (h *ComparisonHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	procedureID := r.PathValue("id")
	if procedureID == "" {
		respondWithError(w, http.StatusBadRequest, "procedure ID is required")
		return
	}

	comparison, err := h.service.Compare(r.Context(), procedureID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, comparison)
}
