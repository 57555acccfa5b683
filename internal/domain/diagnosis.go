package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Diagnosis
var (
	ErrEmptyDiagnosisID     = errors.New("diagnosis ID cannot be empty")
	ErrEmptyDiagnosisUserID = errors.New("diagnosis user ID cannot be empty")
	ErrEmptyCondition       = errors.New("diagnosis condition cannot be empty")
)

// Diagnosis represents one stored medical diagnosis record for a user.
// Recommendations are generated from it; the record itself is plain data.
type Diagnosis struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Condition string    `json:"condition"`
	Symptoms  string    `json:"symptoms,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDiagnosis creates a new Diagnosis owned by the given user.
// It generates a new UUID for the diagnosis ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewDiagnosis(userID uuid.UUID, condition, symptoms, notes string) (*Diagnosis, error) {
	now := time.Now().UTC()
	diagnosis := &Diagnosis{
		ID:        uuid.New(),
		UserID:    userID,
		Condition: strings.TrimSpace(condition),
		Symptoms:  strings.TrimSpace(symptoms),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := diagnosis.Validate(); err != nil {
		return nil, err
	}

	return diagnosis, nil
}

// Validate checks if the Diagnosis has valid data.
// Returns an error if any field fails validation.
func (d *Diagnosis) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDiagnosisID
	}

	if d.UserID == uuid.Nil {
		return ErrEmptyDiagnosisUserID
	}

	if d.Condition == "" {
		return ErrEmptyCondition
	}

	return nil
}
