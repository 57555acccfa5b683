package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies who authored a chat message.
type ChatRole string

// Possible chat message roles
const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// Common validation errors for chat entities
var (
	ErrEmptyChatID             = errors.New("chat session ID cannot be empty")
	ErrEmptyChatUserID         = errors.New("chat session user ID cannot be empty")
	ErrEmptyChatMessageID      = errors.New("chat message ID cannot be empty")
	ErrEmptyChatMessageChatID  = errors.New("chat message session ID cannot be empty")
	ErrEmptyChatMessageContent = errors.New("chat message content cannot be empty")
	ErrInvalidChatRole         = errors.New("invalid chat role")
)

// maxChatTitleLen bounds the stored session title.
const maxChatTitleLen = 80

// ChatSession is the bookkeeping record for one assistant conversation.
// It exists so clients can label and retrieve transcripts; generation never
// reads it back — callers supply conversation history on every turn.
type ChatSession struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewChatSession creates a new ChatSession owned by the given user.
// The title is typically derived from the first message and is truncated
// to a storable length. Returns an error if validation fails.
func NewChatSession(userID uuid.UUID, title string) (*ChatSession, error) {
	now := time.Now().UTC()
	session := &ChatSession{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     TruncateChatTitle(title),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the ChatSession has valid data.
func (s *ChatSession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyChatID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptyChatUserID
	}

	return nil
}

// Touch updates the session's UpdatedAt timestamp. Called when a new
// exchange is appended to the session.
func (s *ChatSession) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// TruncateChatTitle clips a candidate title to the stored maximum.
func TruncateChatTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxChatTitleLen {
		return title
	}
	return string(runes[:maxChatTitleLen])
}

// ChatMessage is one persisted message of a chat session.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chat_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatMessage creates a new ChatMessage in the given session.
// Returns an error if validation fails.
func NewChatMessage(chatID uuid.UUID, role ChatRole, content string) (*ChatMessage, error) {
	message := &ChatMessage{
		ID:        uuid.New(),
		ChatID:    chatID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := message.Validate(); err != nil {
		return nil, err
	}

	return message, nil
}

// Validate checks if the ChatMessage has valid data.
func (m *ChatMessage) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyChatMessageID
	}

	if m.ChatID == uuid.Nil {
		return ErrEmptyChatMessageChatID
	}

	if !isValidChatRole(m.Role) {
		return ErrInvalidChatRole
	}

	if m.Content == "" {
		return ErrEmptyChatMessageContent
	}

	return nil
}

// isValidChatRole checks if the given role is a valid ChatRole.
func isValidChatRole(role ChatRole) bool {
	switch role {
	case ChatRoleUser, ChatRoleModel:
		return true
	default:
		return false
	}
}
