package routes

import (
	"net/http"

	"github.com/zatekoja/careprice/internal/api/handlers"
	"github.com/zatekoja/careprice/internal/api/middleware"
	"github.com/zatekoja/careprice/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	practiceHandler   *handlers.PracticeHandler
	procedureHandler  *handlers.ProcedureHandler
	pricingHandler    *handlers.PricingHandler
	comparisonHandler *handlers.ComparisonHandler
	importHandler     *handlers.ImportHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	practiceHandler *handlers.PracticeHandler,
	procedureHandler *handlers.ProcedureHandler,
	pricingHandler *handlers.PricingHandler,
	comparisonHandler *handlers.ComparisonHandler,
	importHandler *handlers.ImportHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		practiceHandler:   practiceHandler,
		procedureHandler:  procedureHandler,
		pricingHandler:    pricingHandler,
		comparisonHandler: comparisonHandler,
		importHandler:     importHandler,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Practice endpoints
	r.mux.HandleFunc("POST /api/practices", r.practiceHandler.CreatePractice)
	r.mux.HandleFunc("GET /api/practices", r.practiceHandler.ListPractices)
	r.mux.HandleFunc("GET /api/practices/{id}", r.practiceHandler.GetPractice)

	// Procedure endpoints. The literal search route takes precedence over
	// the {id} wildcard.
	r.mux.HandleFunc("POST /api/procedures", r.procedureHandler.CreateProcedure)
	r.mux.HandleFunc("GET /api/procedures", r.procedureHandler.ListProcedures)
	r.mux.HandleFunc("GET /api/procedures/search", r.procedureHandler.SearchProcedures)
	r.mux.HandleFunc("GET /api/procedures/{id}", r.procedureHandler.GetProcedure)
	r.mux.HandleFunc("GET /api/procedures/{id}/comparison", r.comparisonHandler.GetComparison)

	// Pricing endpoints
	r.mux.HandleFunc("POST /api/pricing", r.pricingHandler.CreatePricing)

	// Bulk import endpoint
	r.mux.HandleFunc("POST /api/import", r.importHandler.ImportPricing)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so error responses also carry CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.CORSMiddleware(handler)

	return handler
}
