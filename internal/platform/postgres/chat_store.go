package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/domain"
	"github.com/galenhq/galen-api/internal/platform/logger"
	"github.com/galenhq/galen-api/internal/store"
)

// PostgresChatStore implements the store.ChatStore interface
// using a PostgreSQL database as the storage backend.
type PostgresChatStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresChatStore creates a new PostgreSQL implementation of the
// ChatStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresChatStore(db store.DBTX, logger *slog.Logger) *PostgresChatStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresChatStore{
		db:     db,
		logger: logger.With(slog.String("component", "chat_store")),
	}
}

// Ensure PostgresChatStore implements store.ChatStore interface
var _ store.ChatStore = (*PostgresChatStore)(nil)

// CreateSession implements store.ChatStore.CreateSession
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key
// violation).
func (s *PostgresChatStore) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("chat session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("chat_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO chat_sessions (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.Title,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create chat session",
			slog.String("error", err.Error()),
			slog.String("chat_id", session.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetSession implements store.ChatStore.GetSession
// Returns store.ErrChatNotFound if the session does not exist.
func (s *PostgresChatStore) GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1
	`
	session := &domain.ChatSession{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.Title,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrChatNotFound
		}
		return nil, MapError(err)
	}

	return session, nil
}

// TouchSession implements store.ChatStore.TouchSession
// Returns store.ErrChatNotFound if the session does not exist.
func (s *PostgresChatStore) TouchSession(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(
		ctx,
		`UPDATE chat_sessions SET updated_at = $2 WHERE id = $1`,
		id,
		time.Now().UTC(),
	)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrChatNotFound
	}

	return nil
}

// CreateMessage implements store.ChatStore.CreateMessage
// Returns store.ErrInvalidEntity if the session doesn't exist (foreign key
// violation).
func (s *PostgresChatStore) CreateMessage(ctx context.Context, message *domain.ChatMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := message.Validate(); err != nil {
		log.Warn("chat message validation failed during create",
			slog.String("error", err.Error()),
			slog.String("message_id", message.ID.String()))
		return err
	}

	query := `
		INSERT INTO chat_messages (id, chat_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		message.ID,
		message.ChatID,
		message.Role,
		message.Content,
		message.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create chat message",
			slog.String("error", err.Error()),
			slog.String("message_id", message.ID.String()))
		return MapError(err)
	}

	return nil
}

// ListMessages implements store.ChatStore.ListMessages
// Messages are returned in chronological order so clients can render the
// transcript directly.
func (s *PostgresChatStore) ListMessages(ctx context.Context, chatID uuid.UUID) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, chat_id, role, content, created_at
		FROM chat_messages
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		_ = rows.Close()
	}()

	messages := []*domain.ChatMessage{}
	for rows.Next() {
		message := &domain.ChatMessage{}
		if err := rows.Scan(
			&message.ID,
			&message.ChatID,
			&message.Role,
			&message.Content,
			&message.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return messages, nil
}

// WithTx implements store.ChatStore.WithTx
// It returns a copy of the store bound to the given transaction.
func (s *PostgresChatStore) WithTx(tx *sql.Tx) store.ChatStore {
	return &PostgresChatStore{
		db:     tx,
		logger: s.logger,
	}
}
