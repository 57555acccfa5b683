package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/domain"
)

// RecommendationStore defines the interface for recommendation persistence.
type RecommendationStore interface {
	// Create saves a new recommendation to the store.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity if the diagnosis or user does not exist.
	Create(ctx context.Context, rec *domain.Recommendation) error

	// GetByID retrieves a recommendation by its unique ID.
	// Returns ErrRecommendationNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error)

	// ListByDiagnosis retrieves all recommendations generated for the given
	// diagnosis, newest first. Returns an empty slice if there are none.
	ListByDiagnosis(ctx context.Context, diagnosisID uuid.UUID) ([]*domain.Recommendation, error)

	// WithTx returns a new RecommendationStore instance that uses the
	// provided transaction. The transaction is managed by the caller.
	WithTx(tx *sql.Tx) RecommendationStore
}
