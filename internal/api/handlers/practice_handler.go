package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/careprice/internal/domain/entities"
)

// PracticeService defines the practice operations used by the handler.
type PracticeService interface {
	Create(ctx context.Context, practice *entities.Practice) error
	GetByID(ctx context.Context, id string) (*entities.Practice, error)
	List(ctx context.Context) ([]*entities.Practice, error)
}

// PracticeHandler handles practice-related HTTP requests
type PracticeHandler struct {
	service PracticeService
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(service PracticeService) *PracticeHandler {
	return &PracticeHandler{service: service}
}

// CreatePractice handles POST /api/practices
func (h *PracticeHandler) CreatePractice(w http.ResponseWriter, r *http.Request) {
	var practice entities.Practice
	if err := json.NewDecoder(r.Body).Decode(&practice); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Create(r.Context(), &practice); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, practice)
}

// GetPractice handles GET /api/practices/{id}
func (h *PracticeHandler) GetPractice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "practice ID is required")
		return
	}

	practice, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, practice)
}

// ListPractices handles GET /api/practices
func (h *PracticeHandler) ListPractices(w http.ResponseWriter, r *http.Request) {
	practices, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"practices": practices,
		"count":     len(practices),
	})
}
