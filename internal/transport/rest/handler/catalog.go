package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"ethoscore/internal/service"
)

// CatalogHandler handles question catalog reads
type CatalogHandler struct {
	catalogSvc *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogSvc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// GetQuestions handles GET /v1/questionnaires/{key}/questions
func (h *CatalogHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	questions, err := h.catalogSvc.GetQuestionnaire(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(questions) == 0 {
		writeError(w, http.StatusNotFound, "questionnaire not found")
		return
	}

	writeJSON(w, http.StatusOK, questions)
}
