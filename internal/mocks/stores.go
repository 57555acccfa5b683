package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/domain"
	"github.com/galenhq/galen-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	return nil
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

// MockDiagnosisStore implements store.DiagnosisStore for testing
type MockDiagnosisStore struct {
	CreateFn     func(ctx context.Context, diagnosis *domain.Diagnosis) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Diagnosis, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Diagnosis, error)
}

var _ store.DiagnosisStore = (*MockDiagnosisStore)(nil)

func (m *MockDiagnosisStore) Create(ctx context.Context, diagnosis *domain.Diagnosis) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, diagnosis)
	}
	return nil
}

func (m *MockDiagnosisStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Diagnosis, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrDiagnosisNotFound
}

func (m *MockDiagnosisStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Diagnosis, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return []*domain.Diagnosis{}, nil
}

func (m *MockDiagnosisStore) WithTx(tx *sql.Tx) store.DiagnosisStore { return m }

// MockRecommendationStore implements store.RecommendationStore for testing
type MockRecommendationStore struct {
	CreateFn          func(ctx context.Context, rec *domain.Recommendation) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error)
	ListByDiagnosisFn func(ctx context.Context, diagnosisID uuid.UUID) ([]*domain.Recommendation, error)

	// Created records every recommendation passed to Create.
	Created []*domain.Recommendation
}

var _ store.RecommendationStore = (*MockRecommendationStore)(nil)

func (m *MockRecommendationStore) Create(ctx context.Context, rec *domain.Recommendation) error {
	m.Created = append(m.Created, rec)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, rec)
	}
	return nil
}

func (m *MockRecommendationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrRecommendationNotFound
}

func (m *MockRecommendationStore) ListByDiagnosis(
	ctx context.Context,
	diagnosisID uuid.UUID,
) ([]*domain.Recommendation, error) {
	if m.ListByDiagnosisFn != nil {
		return m.ListByDiagnosisFn(ctx, diagnosisID)
	}
	return []*domain.Recommendation{}, nil
}

func (m *MockRecommendationStore) WithTx(tx *sql.Tx) store.RecommendationStore { return m }

// MockChatStore implements store.ChatStore for testing
type MockChatStore struct {
	CreateSessionFn func(ctx context.Context, session *domain.ChatSession) error
	GetSessionFn    func(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)
	TouchSessionFn  func(ctx context.Context, id uuid.UUID) error
	CreateMessageFn func(ctx context.Context, message *domain.ChatMessage) error
	ListMessagesFn  func(ctx context.Context, chatID uuid.UUID) ([]*domain.ChatMessage, error)

	// CreatedSessions and CreatedMessages record every write.
	CreatedSessions []*domain.ChatSession
	CreatedMessages []*domain.ChatMessage
}

var _ store.ChatStore = (*MockChatStore)(nil)

func (m *MockChatStore) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	m.CreatedSessions = append(m.CreatedSessions, session)
	if m.CreateSessionFn != nil {
		return m.CreateSessionFn(ctx, session)
	}
	return nil
}

func (m *MockChatStore) GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	if m.GetSessionFn != nil {
		return m.GetSessionFn(ctx, id)
	}
	return nil, store.ErrChatNotFound
}

func (m *MockChatStore) TouchSession(ctx context.Context, id uuid.UUID) error {
	if m.TouchSessionFn != nil {
		return m.TouchSessionFn(ctx, id)
	}
	return nil
}

func (m *MockChatStore) CreateMessage(ctx context.Context, message *domain.ChatMessage) error {
	m.CreatedMessages = append(m.CreatedMessages, message)
	if m.CreateMessageFn != nil {
		return m.CreateMessageFn(ctx, message)
	}
	return nil
}

func (m *MockChatStore) ListMessages(ctx context.Context, chatID uuid.UUID) ([]*domain.ChatMessage, error) {
	if m.ListMessagesFn != nil {
		return m.ListMessagesFn(ctx, chatID)
	}
	return []*domain.ChatMessage{}, nil
}

func (m *MockChatStore) WithTx(tx *sql.Tx) store.ChatStore { return m }
