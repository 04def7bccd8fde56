package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/careprice/internal/domain/entities"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

type stubProcedureService struct {
	procedures []*entities.Procedure
	err        error
}

func (s *stubProcedureService) Create(_ context.Context, procedure *entities.Procedure) error {
	if s.err != nil {
		return s.err
	}
	procedure.ID = "proc-1"
	return nil
}

func (s *stubProcedureService) GetByID(_ context.Context, _ string) (*entities.Procedure, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.procedures[0], nil
}

func (s *stubProcedureService) List(_ context.Context) ([]*entities.Procedure, error) {
	return s.procedures, s.err
}

type stubSearcher struct {
	procedures []*entities.Procedure
	err        error

	query    string
	category string
	limit    int
}

func (s *stubSearcher) Search(_ context.Context, query, category string, limit int) ([]*entities.Procedure, error) {
	s.query = query
	s.category = category
	s.limit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.procedures, nil
}

func TestProcedureHandler_SearchParsesParams(t *testing.T) {
	searcher := &stubSearcher{
		procedures: []*entities.Procedure{{ID: "proc-1", Name: "Knee MRI", Category: "Imaging"}},
	}
	handler := NewProcedureHandler(&stubProcedureService{}, searcher)

	req := httptest.NewRequest(http.MethodGet, "/api/procedures/search?query=knee&category=Imaging&max_results=10", nil)
	rr := httptest.NewRecorder()

	handler.SearchProcedures(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "knee", searcher.query)
	assert.Equal(t, "Imaging", searcher.category)
	assert.Equal(t, 10, searcher.limit)

	var response struct {
		Procedures []*entities.Procedure `json:"procedures"`
		Count      int                   `json:"count"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, "Knee MRI", response.Procedures[0].Name)
}

func TestProcedureHandler_SearchOmittedLimitPassesZero(t *testing.T) {
	searcher := &stubSearcher{}
	handler := NewProcedureHandler(&stubProcedureService{}, searcher)

	req := httptest.NewRequest(http.MethodGet, "/api/procedures/search?query=knee", nil)
	rr := httptest.NewRecorder()

	handler.SearchProcedures(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, searcher.limit) // the service applies the default
}

func TestProcedureHandler_SearchBadLimitIs400(t *testing.T) {
	handler := NewProcedureHandler(&stubProcedureService{}, &stubSearcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/procedures/search?query=knee&max_results=ten", nil)
	rr := httptest.NewRecorder()

	handler.SearchProcedures(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProcedureHandler_SearchEmptyQueryIs400(t *testing.T) {
	searcher := &stubSearcher{err: apperrors.NewValidationError("search query is required")}
	handler := NewProcedureHandler(&stubProcedureService{}, searcher)

	req := httptest.NewRequest(http.MethodGet, "/api/procedures/search", nil)
	rr := httptest.NewRecorder()

	handler.SearchProcedures(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProcedureHandler_CreateReturnsCreated(t *testing.T) {
	handler := NewProcedureHandler(&stubProcedureService{}, &stubSearcher{})

	body := `{"name":"Knee MRI","category":"Imaging"}`
	req := httptest.NewRequest(http.MethodPost, "/api/procedures", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	handler.CreateProcedure(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"proc-1"`)
}
