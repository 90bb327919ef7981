package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"ethoscore/internal/service"
)

// ValidationHandler handles the reporting gate endpoint
type ValidationHandler struct {
	validationSvc *service.ValidationService
}

// NewValidationHandler creates a new validation handler
func NewValidationHandler(validationSvc *service.ValidationService) *ValidationHandler {
	return &ValidationHandler{validationSvc: validationSvc}
}

// Validate handles GET /v1/projects/{projectId}/validation.
// An invalid verdict is still a 200: the verdict itself is the payload and
// the report layer decides what to suppress.
func (h *ValidationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	result, err := h.validationSvc.ValidateForReporting(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
