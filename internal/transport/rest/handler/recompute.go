package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"ethoscore/internal/service"
)

// RecomputeHandler handles project recompute triggers
type RecomputeHandler struct {
	recomputeSvc *service.RecomputeService
}

// NewRecomputeHandler creates a new recompute handler
func NewRecomputeHandler(recomputeSvc *service.RecomputeService) *RecomputeHandler {
	return &RecomputeHandler{recomputeSvc: recomputeSvc}
}

type recomputeRequest struct {
	Force bool `json:"force"`
}

// Recompute handles POST /v1/projects/{projectId}/recompute.
// The body is optional; an empty body means no force.
func (h *RecomputeHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var req recomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.recomputeSvc.Recompute(r.Context(), projectID, req.Force)
	if errors.Is(err, service.ErrRecomputeInFlight) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
