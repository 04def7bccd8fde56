package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zatekoja/careprice/internal/domain/entities"
)

// ProcedureService defines the procedure operations used by the handler.
type ProcedureService interface {
	Create(ctx context.Context, procedure *entities.Procedure) error
	GetByID(ctx context.Context, id string) (*entities.Procedure, error)
	List(ctx context.Context) ([]*entities.Procedure, error)
}

// ProcedureSearcher defines the search operation used by the handler.
type ProcedureSearcher interface {
	Search(ctx context.Context, query, category string, limit int) ([]*entities.Procedure, error)
}

// ProcedureHandler handles procedure-related HTTP requests
type ProcedureHandler struct {
	service  ProcedureService
	searcher ProcedureSearcher
}

// NewProcedureHandler creates a new procedure handler
func NewProcedureHandler(service ProcedureService, searcher ProcedureSearcher) *ProcedureHandler {
	return &ProcedureHandler{
		service:  service,
		searcher: searcher,
	}
}

// CreateProcedure handles POST /api/procedures
func (h *ProcedureHandler) CreateProcedure(w http.ResponseWriter, r *http.Request) {
	var procedure entities.Procedure
	if err := json.NewDecoder(r.Body).Decode(&procedure); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Create(r.Context(), &procedure); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, procedure)
}

// GetProcedure handles GET /api/procedures/{id}
func (h *ProcedureHandler) GetProcedure(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "procedure ID is required")
		return
	}

	procedure, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, procedure)
}

// ListProcedures handles GET /api/procedures
func (h *ProcedureHandler) ListProcedures(w http.ResponseWriter, r *http.Request) {
	procedures, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"procedures": procedures,
		"count":      len(procedures),
	})
}

// SearchProcedures handles GET /api/procedures/search
func (h *ProcedureHandler) SearchProcedures(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	category := r.URL.Query().Get("category")

	limit := 0
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "max_results must be an integer")
			return
		}
		limit = parsed
	}

	procedures, err := h.searcher.Search(r.Context(), query, category, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"procedures": procedures,
		"count":      len(procedures),
	})
}
