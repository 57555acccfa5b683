package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/galenhq/galen-api/internal/api/shared"
	"github.com/galenhq/galen-api/internal/service"
)

// DiagnosisHandler handles diagnosis record endpoints.
type DiagnosisHandler struct {
	diagnosisService service.DiagnosisService
	validator        *validator.Validate
}

// NewDiagnosisHandler creates a new DiagnosisHandler.
func NewDiagnosisHandler(diagnosisService service.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{
		diagnosisService: diagnosisService,
		validator:        validator.New(),
	}
}

// Create handles POST /api/diagnoses.
func (h *DiagnosisHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateDiagnosisRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	diagnosis, err := h.diagnosisService.Create(r.Context(), userID, req.Condition, req.Symptoms, req.Notes)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toDiagnosisResponse(diagnosis))
}

// Get handles GET /api/diagnoses/{id}.
func (h *DiagnosisHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	diagnosisID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	diagnosis, err := h.diagnosisService.GetByID(r.Context(), userID, diagnosisID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toDiagnosisResponse(diagnosis))
}

// List handles GET /api/diagnoses.
func (h *DiagnosisHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	diagnoses, err := h.diagnosisService.ListByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]DiagnosisResponse, 0, len(diagnoses))
	for _, d := range diagnoses {
		out = append(out, toDiagnosisResponse(d))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
