package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"ethoscore/internal/model"
	"ethoscore/internal/service"
)

// ScoreHandler handles scoring endpoints
type ScoreHandler struct {
	scoreSvc *service.ScoreService
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreSvc *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreSvc: scoreSvc}
}

// Compute handles POST /v1/projects/{projectId}/users/{userId}/questionnaires/{key}/score
func (h *ScoreHandler) Compute(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	score, err := h.scoreSvc.ComputeScore(r.Context(), vars["projectId"], vars["userId"], vars["key"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if score == nil {
		writeError(w, http.StatusNotFound, "no responses for this questionnaire")
		return
	}

	writeJSON(w, http.StatusOK, score)
}

// List handles GET /v1/projects/{projectId}/scores
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	scores, err := h.scoreSvc.GetScores(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if scores == nil {
		scores = []model.Score{}
	}

	writeJSON(w, http.StatusOK, scores)
}

// Combined handles GET /v1/projects/{projectId}/users/{userId}/combined
func (h *ScoreHandler) Combined(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	combined, err := h.scoreSvc.GetCombined(r.Context(), vars["projectId"], vars["userId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if combined == nil {
		writeError(w, http.StatusNotFound, "no scores for this user")
		return
	}

	writeJSON(w, http.StatusOK, combined)
}

// Project handles GET /v1/projects/{projectId}/score
func (h *ScoreHandler) Project(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	project, err := h.scoreSvc.ComputeProjectScore(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "no submitted scores for this project")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
