package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/domain"
	"github.com/galenhq/galen-api/internal/store"
)

// DiagnosisService provides diagnosis-related operations.
// All operations enforce ownership: callers only ever see their own records.
type DiagnosisService interface {
	// Create records a new diagnosis for the given user.
	Create(ctx context.Context, userID uuid.UUID, condition, symptoms, notes string) (*domain.Diagnosis, error)

	// GetByID retrieves a diagnosis owned by the given user.
	// Returns ErrDiagnosisNotFound if it does not exist, ErrNotOwned if it
	// belongs to another user.
	GetByID(ctx context.Context, userID, diagnosisID uuid.UUID) (*domain.Diagnosis, error)

	// ListByUser retrieves the caller's diagnoses, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Diagnosis, error)
}

type diagnosisServiceImpl struct {
	diagnosisStore store.DiagnosisStore
	logger         *slog.Logger
}

// NewDiagnosisService creates a new DiagnosisService.
// It returns an error if any required dependency is nil.
func NewDiagnosisService(diagnosisStore store.DiagnosisStore, logger *slog.Logger) (DiagnosisService, error) {
	if diagnosisStore == nil {
		return nil, errors.New("diagnosis store cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &diagnosisServiceImpl{
		diagnosisStore: diagnosisStore,
		logger:         logger.With(slog.String("component", "diagnosis_service")),
	}, nil
}

func (s *diagnosisServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	condition, symptoms, notes string,
) (*domain.Diagnosis, error) {
	diagnosis, err := domain.NewDiagnosis(userID, condition, symptoms, notes)
	if err != nil {
		return nil, err
	}

	if err := s.diagnosisStore.Create(ctx, diagnosis); err != nil {
		return nil, fmt.Errorf("failed to create diagnosis: %w", err)
	}

	s.logger.Debug("diagnosis created",
		slog.String("diagnosis_id", diagnosis.ID.String()),
		slog.String("user_id", userID.String()))
	return diagnosis, nil
}

func (s *diagnosisServiceImpl) GetByID(ctx context.Context, userID, diagnosisID uuid.UUID) (*domain.Diagnosis, error) {
	diagnosis, err := s.diagnosisStore.GetByID(ctx, diagnosisID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDiagnosisNotFound
		}
		return nil, fmt.Errorf("failed to get diagnosis: %w", err)
	}

	if diagnosis.UserID != userID {
		return nil, ErrNotOwned
	}

	return diagnosis, nil
}

func (s *diagnosisServiceImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Diagnosis, error) {
	diagnoses, err := s.diagnosisStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list diagnoses: %w", err)
	}
	return diagnoses, nil
}
