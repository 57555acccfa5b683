package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Recommendation
var (
	ErrEmptyRecommendationID          = errors.New("recommendation ID cannot be empty")
	ErrEmptyRecommendationDiagnosisID = errors.New("recommendation diagnosis ID cannot be empty")
	ErrEmptyRecommendationUserID      = errors.New("recommendation user ID cannot be empty")
	ErrEmptyRecommendationContent     = errors.New("recommendation content cannot be empty")
	ErrEmptyRecommendationModel       = errors.New("recommendation model cannot be empty")
)

// Recommendation is one generated free-text recommendation persisted for a
// diagnosis. Model records which upstream candidate produced the content,
// since the candidate list makes that nondeterministic across calls.
type Recommendation struct {
	ID          uuid.UUID `json:"id"`
	DiagnosisID uuid.UUID `json:"diagnosis_id"`
	UserID      uuid.UUID `json:"user_id"`
	Content     string    `json:"content"`
	Model       string    `json:"model"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRecommendation creates a new Recommendation for the given diagnosis.
// Returns an error if validation fails.
func NewRecommendation(diagnosisID, userID uuid.UUID, content, model string) (*Recommendation, error) {
	rec := &Recommendation{
		ID:          uuid.New(),
		DiagnosisID: diagnosisID,
		UserID:      userID,
		Content:     content,
		Model:       model,
		CreatedAt:   time.Now().UTC(),
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the Recommendation has valid data.
// Returns an error if any field fails validation.
func (r *Recommendation) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRecommendationID
	}

	if r.DiagnosisID == uuid.Nil {
		return ErrEmptyRecommendationDiagnosisID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyRecommendationUserID
	}

	if r.Content == "" {
		return ErrEmptyRecommendationContent
	}

	if r.Model == "" {
		return ErrEmptyRecommendationModel
	}

	return nil
}
