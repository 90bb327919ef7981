package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ethoscore/internal/metrics"
	"ethoscore/internal/service"
	"ethoscore/internal/transport/rest/handler"
	"ethoscore/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	CatalogService    *service.CatalogService
	ScoreService      *service.ScoreService
	ResponseService   *service.ResponseService
	ValidationService *service.ValidationService
	RecomputeService  *service.RecomputeService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	catalogHandler := handler.NewCatalogHandler(c.CatalogService)
	scoreHandler := handler.NewScoreHandler(c.ScoreService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	validationHandler := handler.NewValidationHandler(c.ValidationService)
	recomputeHandler := handler.NewRecomputeHandler(c.RecomputeService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Prometheus metrics from the engine's own registry
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/questionnaires/{key}/questions",
		catalogHandler.GetQuestions).Methods("GET", "OPTIONS")

	v1.HandleFunc("/projects/{projectId}/users/{userId}/questionnaires/{key}/score",
		scoreHandler.Compute).Methods("POST", "OPTIONS")
	v1.HandleFunc("/projects/{projectId}/users/{userId}/combined",
		scoreHandler.Combined).Methods("GET", "OPTIONS")
	v1.HandleFunc("/projects/{projectId}/scores",
		scoreHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/projects/{projectId}/score",
		scoreHandler.Project).Methods("GET", "OPTIONS")

	v1.HandleFunc("/projects/{projectId}/validation",
		validationHandler.Validate).Methods("GET", "OPTIONS")
	v1.HandleFunc("/projects/{projectId}/recompute",
		recomputeHandler.Recompute).Methods("POST", "OPTIONS")

	v1.HandleFunc("/projects/{projectId}/responses/{responseId}/answers/{questionId}/severity",
		responseHandler.SetSeverity).Methods("PUT", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
