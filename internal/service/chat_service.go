package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/domain"
	"github.com/galenhq/galen-api/internal/generation"
	"github.com/galenhq/galen-api/internal/store"
)

// ChatReply is the outcome of one chat turn.
type ChatReply struct {
	// ChatID is the session the turn was recorded under: newly created when
	// the caller supplied none, otherwise echoed back. It is bookkeeping
	// only and never used to reconstruct history.
	ChatID uuid.UUID

	// Reply is the generated model response.
	Reply string

	// Model is the candidate that produced the reply.
	Model string
}

// ChatTranscript is a stored session together with its messages.
type ChatTranscript struct {
	Session  *domain.ChatSession
	Messages []*domain.ChatMessage
}

// ChatService runs chat turns against the generator and keeps transcript
// bookkeeping. Generation is stateless across turns: the caller supplies
// the full prior conversation every time, and stored messages are never
// read back into a generation call.
type ChatService interface {
	// Converse runs one chat turn. If chatID is non-nil the session must
	// exist and belong to the caller (ErrChatNotFound otherwise); if nil a
	// new session is created. The user message and the model reply are
	// persisted in one transaction after generation succeeds.
	Converse(ctx context.Context, userID uuid.UUID, chatID *uuid.UUID, history []generation.Turn, message string) (*ChatReply, error)

	// GetTranscript returns a stored session and its messages.
	// Returns ErrChatNotFound for missing or foreign sessions.
	GetTranscript(ctx context.Context, userID, chatID uuid.UUID) (*ChatTranscript, error)
}

type chatServiceImpl struct {
	db        *sql.DB
	chatStore store.ChatStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewChatService creates a new ChatService.
// It returns an error if any required dependency is nil.
func NewChatService(
	db *sql.DB,
	chatStore store.ChatStore,
	generator generation.Generator,
	logger *slog.Logger,
) (ChatService, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if chatStore == nil {
		return nil, errors.New("chat store cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &chatServiceImpl{
		db:        db,
		chatStore: chatStore,
		generator: generator,
		logger:    logger.With(slog.String("component", "chat_service")),
	}, nil
}

func (s *chatServiceImpl) Converse(
	ctx context.Context,
	userID uuid.UUID,
	chatID *uuid.UUID,
	history []generation.Turn,
	message string,
) (*ChatReply, error) {
	// Resolve the session before paying for generation, so a bad chat id
	// fails fast. Foreign sessions are reported as not found.
	var session *domain.ChatSession
	if chatID != nil {
		existing, err := s.chatStore.GetSession(ctx, *chatID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrChatNotFound
			}
			return nil, fmt.Errorf("failed to get chat session: %w", err)
		}
		if existing.UserID != userID {
			return nil, ErrChatNotFound
		}
		session = existing
	} else {
		created, err := domain.NewChatSession(userID, domain.TruncateChatTitle(message))
		if err != nil {
			return nil, err
		}
		session = created
	}

	result, err := s.generator.GenerateChat(ctx, history, message)
	if err != nil {
		s.logger.Error("chat generation failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate chat reply: %w", err)
	}

	userMsg, err := domain.NewChatMessage(session.ID, domain.ChatRoleUser, message)
	if err != nil {
		return nil, err
	}
	modelMsg, err := domain.NewChatMessage(session.ID, domain.ChatRoleModel, result.Text)
	if err != nil {
		return nil, err
	}

	// Transcript bookkeeping is one atomic write: a new session row when
	// needed, both messages, and the session timestamp.
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.chatStore.WithTx(tx)

		if chatID == nil {
			if err := txStore.CreateSession(ctx, session); err != nil {
				return err
			}
		} else if err := txStore.TouchSession(ctx, session.ID); err != nil {
			return err
		}

		if err := txStore.CreateMessage(ctx, userMsg); err != nil {
			return err
		}
		return txStore.CreateMessage(ctx, modelMsg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist chat exchange: %w", err)
	}

	s.logger.Debug("chat turn completed",
		slog.String("chat_id", session.ID.String()),
		slog.String("model", result.Model))

	return &ChatReply{
		ChatID: session.ID,
		Reply:  result.Text,
		Model:  result.Model,
	}, nil
}

func (s *chatServiceImpl) GetTranscript(ctx context.Context, userID, chatID uuid.UUID) (*ChatTranscript, error) {
	session, err := s.chatStore.GetSession(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrChatNotFound
	}

	messages, err := s.chatStore.ListMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	return &ChatTranscript{
		Session:  session,
		Messages: messages,
	}, nil
}
