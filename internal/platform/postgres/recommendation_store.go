package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/domain"
	"github.com/galenhq/galen-api/internal/platform/logger"
	"github.com/galenhq/galen-api/internal/store"
)

// PostgresRecommendationStore implements the store.RecommendationStore
// interface using a PostgreSQL database as the storage backend.
type PostgresRecommendationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRecommendationStore creates a new PostgreSQL implementation of
// the RecommendationStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresRecommendationStore(db store.DBTX, logger *slog.Logger) *PostgresRecommendationStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRecommendationStore{
		db:     db,
		logger: logger.With(slog.String("component", "recommendation_store")),
	}
}

// Ensure PostgresRecommendationStore implements store.RecommendationStore interface
var _ store.RecommendationStore = (*PostgresRecommendationStore)(nil)

// Create implements store.RecommendationStore.Create
// It saves a generated recommendation, handling domain validation.
// Returns store.ErrInvalidEntity if the diagnosis or user doesn't exist
// (foreign key violation).
func (s *PostgresRecommendationStore) Create(ctx context.Context, rec *domain.Recommendation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rec.Validate(); err != nil {
		log.Warn("recommendation validation failed during create",
			slog.String("error", err.Error()),
			slog.String("recommendation_id", rec.ID.String()))
		return err
	}

	query := `
		INSERT INTO recommendations (id, diagnosis_id, user_id, content, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.DiagnosisID,
		rec.UserID,
		rec.Content,
		rec.Model,
		rec.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create recommendation",
			slog.String("error", err.Error()),
			slog.String("recommendation_id", rec.ID.String()))
		return MapError(err)
	}

	log.Debug("recommendation created",
		slog.String("recommendation_id", rec.ID.String()),
		slog.String("diagnosis_id", rec.DiagnosisID.String()),
		slog.String("model", rec.Model))
	return nil
}

// GetByID implements store.RecommendationStore.GetByID
// Returns store.ErrRecommendationNotFound if it does not exist.
func (s *PostgresRecommendationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	query := `
		SELECT id, diagnosis_id, user_id, content, model, created_at
		FROM recommendations
		WHERE id = $1
	`
	rec := &domain.Recommendation{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.DiagnosisID,
		&rec.UserID,
		&rec.Content,
		&rec.Model,
		&rec.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrRecommendationNotFound
		}
		return nil, MapError(err)
	}

	return rec, nil
}

// ListByDiagnosis implements store.RecommendationStore.ListByDiagnosis
// Recommendations are returned newest first.
func (s *PostgresRecommendationStore) ListByDiagnosis(ctx context.Context, diagnosisID uuid.UUID) ([]*domain.Recommendation, error) {
	query := `
		SELECT id, diagnosis_id, user_id, content, model, created_at
		FROM recommendations
		WHERE diagnosis_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, diagnosisID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		_ = rows.Close()
	}()

	recs := []*domain.Recommendation{}
	for rows.Next() {
		rec := &domain.Recommendation{}
		if err := rows.Scan(
			&rec.ID,
			&rec.DiagnosisID,
			&rec.UserID,
			&rec.Content,
			&rec.Model,
			&rec.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return recs, nil
}

// WithTx implements store.RecommendationStore.WithTx
// It returns a copy of the store bound to the given transaction.
func (s *PostgresRecommendationStore) WithTx(tx *sql.Tx) store.RecommendationStore {
	return &PostgresRecommendationStore{
		db:     tx,
		logger: s.logger,
	}
}
