package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/careprice/internal/domain/entities"
)

// ImportService defines the bulk import operation used by the handler.
type ImportService interface {
	Import(ctx context.Context, batch *entities.ImportBatch) (*entities.ImportSummary, error)
}

// ImportHandler handles bulk pricing import HTTP requests
type ImportHandler struct {
	service ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(service ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// ImportPricing handles POST /api/import
func (h *ImportHandler) ImportPricing(w http.ResponseWriter, r *http.Request) {
	var batch entities.ImportBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	summary, err := h.service.Import(r.Context(), &batch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
