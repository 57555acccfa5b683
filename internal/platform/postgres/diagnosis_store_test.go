package postgres

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func validDiagnosis(t *testing.T) *domain.Diagnosis {
	t.Helper()

	diagnosis, err := domain.NewDiagnosis(uuid.New(), "seasonal allergies", "sneezing", "worse in spring")
	require.NoError(t, err)
	return diagnosis
}

func TestDiagnosisStoreCreate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		db, mock := setupMockDB(t)
		diagnosisStore := NewPostgresDiagnosisStore(db, testLogger())
		diagnosis := validDiagnosis(t)

		mock.ExpectExec(`INSERT INTO diagnoses`).
			WithArgs(
				diagnosis.ID,
				diagnosis.UserID,
				diagnosis.Condition,
				diagnosis.Symptoms,
				diagnosis.Notes,
				diagnosis.CreatedAt,
				diagnosis.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := diagnosisStore.Create(context.Background(), diagnosis)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("validation failure skips the insert", func(t *testing.T) {
		t.Parallel()

		db, mock := setupMockDB(t)
		diagnosisStore := NewPostgresDiagnosisStore(db, testLogger())

		diagnosis := validDiagnosis(t)
		diagnosis.Condition = ""

		err := diagnosisStore.Create(context.Background(), diagnosis)

		assert.ErrorIs(t, err, domain.ErrEmptyCondition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user maps to ErrInvalidEntity", func(t *testing.T) {
		t.Parallel()

		db, mock := setupMockDB(t)
		diagnosisStore := NewPostgresDiagnosisStore(db, testLogger())
		diagnosis := validDiagnosis(t)

		mock.ExpectExec(`INSERT INTO diagnoses`).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "diagnoses_user_id_fkey"})

		err := diagnosisStore.Create(context.Background(), diagnosis)

		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDiagnosisStoreGetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		db, mock := setupMockDB(t)
		diagnosisStore := NewPostgresDiagnosisStore(db, testLogger())

		id := uuid.New()
		userID := uuid.New()
		now := time.Now().UTC()

		rows := sqlmock.NewRows([]string{"id", "user_id", "condition", "symptoms", "notes", "created_at", "updated_at"}).
			AddRow(id, userID, "migraine", "light sensitivity", "", now, now)

		mock.ExpectQuery(`SELECT id, user_id, condition, symptoms, notes, created_at, updated_at`).
			WithArgs(id).
			WillReturnRows(rows)

		diagnosis, err := diagnosisStore.GetByID(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, diagnosis.ID)
		assert.Equal(t, userID, diagnosis.UserID)
		assert.Equal(t, "migraine", diagnosis.Condition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to ErrDiagnosisNotFound", func(t *testing.T) {
		t.Parallel()

		db, mock := setupMockDB(t)
		diagnosisStore := NewPostgresDiagnosisStore(db, testLogger())

		id := uuid.New()
		mock.ExpectQuery(`SELECT id, user_id, condition, symptoms, notes, created_at, updated_at`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		diagnosis, err := diagnosisStore.GetByID(context.Background(), id)

		assert.Nil(t, diagnosis)
		assert.ErrorIs(t, err, store.ErrDiagnosisNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDiagnosisStoreListByUser(t *testing.T) {
	t.Parallel()

	t.Run("returns rows newest first", func(t *testing.T) {
		t.Parallel()

		db, mock := setupMockDB(t)
		diagnosisStore := NewPostgresDiagnosisStore(db, testLogger())

		userID := uuid.New()
		now := time.Now().UTC()

		rows := sqlmock.NewRows([]string{"id", "user_id", "condition", "symptoms", "notes", "created_at", "updated_at"}).
			AddRow(uuid.New(), userID, "newer", "", "", now, now).
			AddRow(uuid.New(), userID, "older", "", "", now.Add(-time.Hour), now.Add(-time.Hour))

		mock.ExpectQuery(`SELECT id, user_id, condition, symptoms, notes, created_at, updated_at`).
			WithArgs(userID).
			WillReturnRows(rows)

		diagnoses, err := diagnosisStore.ListByUser(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, diagnoses, 2)
		assert.Equal(t, "newer", diagnoses[0].Condition)
		assert.Equal(t, "older", diagnoses[1].Condition)
	})

	t.Run("no rows yields empty slice", func(t *testing.T) {
		t.Parallel()

		db, mock := setupMockDB(t)
		diagnosisStore := NewPostgresDiagnosisStore(db, testLogger())

		userID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "user_id", "condition", "symptoms", "notes", "created_at", "updated_at"})

		mock.ExpectQuery(`SELECT id, user_id, condition, symptoms, notes, created_at, updated_at`).
			WithArgs(userID).
			WillReturnRows(rows)

		diagnoses, err := diagnosisStore.ListByUser(context.Background(), userID)

		require.NoError(t, err)
		assert.NotNil(t, diagnoses)
		assert.Empty(t, diagnoses)
	})
}
