package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/domain"
)

// ChatStore defines the interface for chat session bookkeeping persistence.
// Stored sessions and messages are write-mostly records for client
// retrieval; generation never reads them back.
type ChatStore interface {
	// CreateSession saves a new chat session to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	CreateSession(ctx context.Context, session *domain.ChatSession) error

	// GetSession retrieves a chat session by its unique ID.
	// Returns ErrChatNotFound if the session does not exist.
	GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)

	// TouchSession updates the session's updated_at timestamp.
	// Returns ErrChatNotFound if the session does not exist.
	TouchSession(ctx context.Context, id uuid.UUID) error

	// CreateMessage appends one message to a session's transcript.
	// Returns ErrInvalidEntity if the session does not exist.
	CreateMessage(ctx context.Context, message *domain.ChatMessage) error

	// ListMessages retrieves a session's messages in chronological order.
	// Returns an empty slice if the session has no messages.
	ListMessages(ctx context.Context, chatID uuid.UUID) ([]*domain.ChatMessage, error)

	// WithTx returns a new ChatStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ChatStore
}
