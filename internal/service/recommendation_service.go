package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/domain"
	"github.com/galenhq/galen-api/internal/generation"
	"github.com/galenhq/galen-api/internal/store"
)

// RecommendationService turns stored diagnoses into generated free-text
// recommendations and persists the results.
type RecommendationService interface {
	// GenerateForDiagnosis fetches the diagnosis, renders the prompt, asks
	// the generator for text, persists a recommendation row carrying the
	// generated content and winning model, and returns it.
	// Returns ErrDiagnosisNotFound / ErrNotOwned for missing or foreign
	// diagnoses; generation failures propagate with their classification
	// (generation.ErrAuthFailed, generation.ErrModelsExhausted).
	GenerateForDiagnosis(ctx context.Context, userID, diagnosisID uuid.UUID) (*domain.Recommendation, error)

	// ListForDiagnosis returns the persisted recommendations for an owned
	// diagnosis, newest first. Same ownership rules as GenerateForDiagnosis.
	ListForDiagnosis(ctx context.Context, userID, diagnosisID uuid.UUID) ([]*domain.Recommendation, error)
}

type recommendationServiceImpl struct {
	diagnosisStore      store.DiagnosisStore
	recommendationStore store.RecommendationStore
	generator           generation.Generator
	prompts             *promptBuilder
	logger              *slog.Logger
}

// NewRecommendationService creates a new RecommendationService.
// It returns an error if any required dependency is nil or the prompt
// template fails to parse.
func NewRecommendationService(
	diagnosisStore store.DiagnosisStore,
	recommendationStore store.RecommendationStore,
	generator generation.Generator,
	logger *slog.Logger,
) (RecommendationService, error) {
	if diagnosisStore == nil {
		return nil, errors.New("diagnosis store cannot be nil")
	}
	if recommendationStore == nil {
		return nil, errors.New("recommendation store cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	prompts, err := newPromptBuilder()
	if err != nil {
		return nil, err
	}

	return &recommendationServiceImpl{
		diagnosisStore:      diagnosisStore,
		recommendationStore: recommendationStore,
		generator:           generator,
		prompts:             prompts,
		logger:              logger.With(slog.String("component", "recommendation_service")),
	}, nil
}

func (s *recommendationServiceImpl) GenerateForDiagnosis(
	ctx context.Context,
	userID, diagnosisID uuid.UUID,
) (*domain.Recommendation, error) {
	diagnosis, err := s.ownedDiagnosis(ctx, userID, diagnosisID)
	if err != nil {
		return nil, err
	}

	prompt, err := s.prompts.Render(diagnosis)
	if err != nil {
		return nil, err
	}

	result, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("recommendation generation failed",
			slog.String("diagnosis_id", diagnosisID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate recommendation: %w", err)
	}

	rec, err := domain.NewRecommendation(diagnosisID, userID, result.Text, result.Model)
	if err != nil {
		return nil, err
	}

	if err := s.recommendationStore.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist recommendation: %w", err)
	}

	s.logger.Debug("recommendation generated",
		slog.String("recommendation_id", rec.ID.String()),
		slog.String("diagnosis_id", diagnosisID.String()),
		slog.String("model", rec.Model))
	return rec, nil
}

func (s *recommendationServiceImpl) ListForDiagnosis(
	ctx context.Context,
	userID, diagnosisID uuid.UUID,
) ([]*domain.Recommendation, error) {
	if _, err := s.ownedDiagnosis(ctx, userID, diagnosisID); err != nil {
		return nil, err
	}

	recs, err := s.recommendationStore.ListByDiagnosis(ctx, diagnosisID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}

// ownedDiagnosis fetches a diagnosis and enforces that the caller owns it.
func (s *recommendationServiceImpl) ownedDiagnosis(
	ctx context.Context,
	userID, diagnosisID uuid.UUID,
) (*domain.Diagnosis, error) {
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
