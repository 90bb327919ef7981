package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"ethoscore/internal/service"
)

var validate = validator.New()

// ResponseHandler handles reviewer-side response mutations
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// Severity is a pointer so that an explicit 0 passes required.
type setSeverityRequest struct {
	Severity *float64 `json:"severity" validate:"required,gte=0,lte=1"`
}

// SetSeverity handles PUT /v1/projects/{projectId}/responses/{responseId}/answers/{questionId}/severity
func (h *ResponseHandler) SetSeverity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req setSeverityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "severity must be a number between 0 and 1")
		return
	}

	err := h.responseSvc.SetAnswerSeverity(r.Context(),
		vars["projectId"], vars["responseId"], vars["questionId"], *req.Severity)
	switch {
	case errors.Is(err, service.ErrResponseNotFound), errors.Is(err, service.ErrAnswerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSeverityNotApplicable):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
