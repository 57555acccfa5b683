package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galenhq/galen-api/internal/domain"
	"github.com/galenhq/galen-api/internal/store"
)

func TestRecommendationStoreCreate(t *testing.T) {
	t.Parallel()

	t.Run("persists content and winning model", func(t *testing.T) {
		t.Parallel()

		db, mock := setupMockDB(t)
		recStore := NewPostgresRecommendationStore(db, testLogger())

		rec, err := domain.NewRecommendation(uuid.New(), uuid.New(), "Drink water.", "gemini-2.5-pro")
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO recommendations`).
			WithArgs(rec.ID, rec.DiagnosisID, rec.UserID, rec.Content, rec.Model, rec.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, recStore.Create(context.Background(), rec))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown diagnosis maps to ErrInvalidEntity", func(t *testing.T) {
		t.Parallel()

		db, mock := setupMockDB(t)
		recStore := NewPostgresRecommendationStore(db, testLogger())

		rec, err := domain.NewRecommendation(uuid.New(), uuid.New(), "content", "model")
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO recommendations`).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "recommendations_diagnosis_id_fkey"})

		assert.ErrorIs(t, recStore.Create(context.Background(), rec), store.ErrInvalidEntity)
	})

	t.Run("empty content never reaches the database", func(t *testing.T) {
		t.Parallel()

		db, mock := setupMockDB(t)
		recStore := NewPostgresRecommendationStore(db, testLogger())

		rec := &domain.Recommendation{
			ID:          uuid.New(),
			DiagnosisID: uuid.New(),
			UserID:      uuid.New(),
			Model:       "gemini-2.5-pro",
			CreatedAt:   time.Now().UTC(),
		}

		err := recStore.Create(context.Background(), rec)

		assert.ErrorIs(t, err, domain.ErrEmptyRecommendationContent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecommendationStoreListByDiagnosis(t *testing.T) {
	t.Parallel()

	db, mock := setupMockDB(t)
	recStore := NewPostgresRecommendationStore(db, testLogger())

	diagnosisID := uuid.New()
	userID := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "diagnosis_id", "user_id", "content", "model", "created_at"}).
		AddRow(uuid.New(), diagnosisID, userID, "Rest and hydrate.", "gemini-2.5-pro", now).
		AddRow(uuid.New(), diagnosisID, userID, "See a clinician.", "gemini-2.5-flash", now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT id, diagnosis_id, user_id, content, model, created_at`).
		WithArgs(diagnosisID).
		WillReturnRows(rows)

	recs, err := recStore.ListByDiagnosis(context.Background(), diagnosisID)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Rest and hydrate.", recs[0].Content)
	assert.Equal(t, "gemini-2.5-pro", recs[0].Model)
}
