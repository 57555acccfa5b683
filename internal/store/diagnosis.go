package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/domain"
)

// DiagnosisStore defines the interface for diagnosis data persistence.
type DiagnosisStore interface {
	// Create saves a new diagnosis to the store.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, diagnosis *domain.Diagnosis) error

	// GetByID retrieves a diagnosis by its unique ID.
	// Returns ErrDiagnosisNotFound if the diagnosis does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Diagnosis, error)

	// ListByUser retrieves all diagnoses owned by the given user,
	// newest first. Returns an empty slice if the user has none.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Diagnosis, error)

	// WithTx returns a new DiagnosisStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) DiagnosisStore
}
