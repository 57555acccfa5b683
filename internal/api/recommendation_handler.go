package api

import (
	"net/http"

	"github.com/galenhq/galen-api/internal/api/shared"
	"github.com/galenhq/galen-api/internal/service"
)

// RecommendationHandler handles recommendation endpoints. Generation is
// synchronous: the response is only written once the upstream call has
// either produced text or failed through every candidate model.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// Generate handles POST /api/diagnoses/{id}/recommendation.
func (h *RecommendationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	diagnosisID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	rec, err := h.recommendationService.GenerateForDiagnosis(r.Context(), userID, diagnosisID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toRecommendationResponse(rec))
}

// List handles GET /api/diagnoses/{id}/recommendations.
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	diagnosisID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	recs, err := h.recommendationService.ListForDiagnosis(r.Context(), userID, diagnosisID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRecommendationResponse(rec))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
