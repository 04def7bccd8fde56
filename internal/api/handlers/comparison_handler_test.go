package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/careprice/internal/domain/entities"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

type stubComparisonService struct {
	comparison *entities.ProcedureComparison
	err        error
}

func (s *stubComparisonService) Compare(_ context.Context, _ string) (*entities.ProcedureComparison, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.comparison, nil
}

func newComparisonRequest(procedureID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/procedures/"+procedureID+"/comparison", nil)
	req.SetPathValue("id", procedureID)
	return req
}

func TestComparisonHandler_Success(t *testing.T) {
	service := &stubComparisonService{
		comparison: &entities.ProcedureComparison{
			Procedure: &entities.Procedure{ID: "proc-1", Name: "Knee MRI"},
			PricingOptions: []entities.PricingOption{
				{Practice: entities.Practice{ID: "prac-1", Name: "City Clinic"}, Cost: 100, Currency: "USD", IsLowestPrice: true},
				{Practice: entities.Practice{ID: "prac-2", Name: "Valley Hospital"}, Cost: 150, Currency: "USD"},
			},
		},
	}
	handler := NewComparisonHandler(service)

	rr := httptest.NewRecorder()
	handler.GetComparison(rr, newComparisonRequest("proc-1"))

	assert.Equal(t, http.StatusOK, rr.Code)

	var response entities.ProcedureComparison
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "Knee MRI", response.Procedure.Name)
	assert.Len(t, response.PricingOptions, 2)
	assert.True(t, response.PricingOptions[0].IsLowestPrice)
	assert.False(t, response.PricingOptions[1].IsLowestPrice)
}

func TestComparisonHandler_EmptyOptionsIsStillOK(t *testing.T) {
	service := &stubComparisonService{
		comparison: &entities.ProcedureComparison{
			Procedure:      &entities.Procedure{ID: "proc-1", Name: "Knee MRI"},
			PricingOptions: []entities.PricingOption{},
		},
	}
	handler := NewComparisonHandler(service)

	rr := httptest.NewRecorder()
	handler.GetComparison(rr, newComparisonRequest("proc-1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"pricing_options":[]`)
}

func TestComparisonHandler_UnknownProcedureIs404(t *testing.T) {
	service := &stubComparisonService{err: apperrors.NewNotFoundError("procedure not found")}
	handler := NewComparisonHandler(service)

	rr := httptest.NewRecorder()
	handler.GetComparison(rr, newComparisonRequest("missing"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestComparisonHandler_MissingIDIs400(t *testing.T) {
	handler := NewComparisonHandler(&stubComparisonService{})

	req := httptest.NewRequest(http.MethodGet, "/api/procedures//comparison", nil)
	rr := httptest.NewRecorder()
	handler.GetComparison(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
