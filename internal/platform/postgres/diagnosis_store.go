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

// PostgresDiagnosisStore implements the store.DiagnosisStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDiagnosisStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDiagnosisStore creates a new PostgreSQL implementation of the
// DiagnosisStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDiagnosisStore(db store.DBTX, logger *slog.Logger) *PostgresDiagnosisStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDiagnosisStore{
		db:     db,
		logger: logger.With(slog.String("component", "diagnosis_store")),
	}
}

// Ensure PostgresDiagnosisStore implements store.DiagnosisStore interface
var _ store.DiagnosisStore = (*PostgresDiagnosisStore)(nil)

// Create implements store.DiagnosisStore.Create
// It saves a new diagnosis to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key
// violation).
func (s *PostgresDiagnosisStore) Create(ctx context.Context, diagnosis *domain.Diagnosis) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := diagnosis.Validate(); err != nil {
		log.Warn("diagnosis validation failed during create",
			slog.String("error", err.Error()),
			slog.String("diagnosis_id", diagnosis.ID.String()))
		return err
	}

	query := `
		INSERT INTO diagnoses (id, user_id, condition, symptoms, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		diagnosis.ID,
		diagnosis.UserID,
		diagnosis.Condition,
		diagnosis.Symptoms,
		diagnosis.Notes,
		diagnosis.CreatedAt,
		diagnosis.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create diagnosis",
			slog.String("error", err.Error()),
			slog.String("diagnosis_id", diagnosis.ID.String()))
		return MapError(err)
	}

	log.Debug("diagnosis created",
		slog.String("diagnosis_id", diagnosis.ID.String()),
		slog.String("user_id", diagnosis.UserID.String()))
	return nil
}

// GetByID implements store.DiagnosisStore.GetByID
// Returns store.ErrDiagnosisNotFound if the diagnosis does not exist.
func (s *PostgresDiagnosisStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Diagnosis, error) {
	query := `
		SELECT id, user_id, condition, symptoms, notes, created_at, updated_at
		FROM diagnoses
		WHERE id = $1
	`
	diagnosis := &domain.Diagnosis{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&diagnosis.ID,
		&diagnosis.UserID,
		&diagnosis.Condition,
		&diagnosis.Symptoms,
		&diagnosis.Notes,
		&diagnosis.CreatedAt,
		&diagnosis.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrDiagnosisNotFound
		}
		return nil, MapError(err)
	}

	return diagnosis, nil
}

// ListByUser implements store.DiagnosisStore.ListByUser
// Diagnoses are returned newest first.
func (s *PostgresDiagnosisStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Diagnosis, error) {
	query := `
		SELECT id, user_id, condition, symptoms, notes, created_at, updated_at
		FROM diagnoses
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		_ = rows.Close()
	}()

	diagnoses := []*domain.Diagnosis{}
	for rows.Next() {
		diagnosis := &domain.Diagnosis{}
		if err := rows.Scan(
			&diagnosis.ID,
			&diagnosis.UserID,
			&diagnosis.Condition,
			&diagnosis.Symptoms,
			&diagnosis.Notes,
			&diagnosis.CreatedAt,
			&diagnosis.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		diagnoses = append(diagnoses, diagnosis)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return diagnoses, nil
}

// WithTx implements store.DiagnosisStore.WithTx
// It returns a copy of the store bound to the given transaction.
func (s *PostgresDiagnosisStore) WithTx(tx *sql.Tx) store.DiagnosisStore {
	return &PostgresDiagnosisStore{
		db:     tx,
		logger: s.logger,
	}
}
