package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/careprice/internal/domain/entities"
)

// PricingService defines the pricing operations used by the handler.
type PricingService interface {
	Create(ctx context.Context, entry *entities.PricingEntry) (*entities.PricingEntry, error)
}

// PricingHandler handles pricing entry HTTP requests
type PricingHandler struct {
	service PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(service PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

// CreatePricing handles POST /api/pricing
func (h *PricingHandler) CreatePricing(w http.ResponseWriter, r *http.Request) {
	var entry entities.PricingEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.service.Create(r.Context(), &entry)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}
