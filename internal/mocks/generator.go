package mocks

import (
	"context"
	"sync"

	"github.com/galenhq/galen-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateTextFn allows test cases to mock the GenerateText behavior
	GenerateTextFn func(ctx context.Context, prompt string) (*generation.Result, error)

	// GenerateChatFn allows test cases to mock the GenerateChat behavior
	GenerateChatFn func(ctx context.Context, history []generation.Turn, message string) (*generation.Result, error)

	// Default response values used when no Fn override is set
	Result *generation.Result
	Err    error

	// Call tracking for verification
	mu        sync.Mutex
	TextCalls []string
	ChatCalls []ChatCall
}

// ChatCall records the arguments of one GenerateChat invocation.
type ChatCall struct {
	History []generation.Turn
	Message string
}

// Ensure MockGenerator implements generation.Generator
var _ generation.Generator = (*MockGenerator)(nil)

// GenerateText implements the generation.Generator interface
func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (*generation.Result, error) {
	m.mu.Lock()
	m.TextCalls = append(m.TextCalls, prompt)
	m.mu.Unlock()

	if m.GenerateTextFn != nil {
		return m.GenerateTextFn(ctx, prompt)
	}
	return m.Result, m.Err
}

// GenerateChat implements the generation.Generator interface
func (m *MockGenerator) GenerateChat(
	ctx context.Context,
	history []generation.Turn,
	message string,
) (*generation.Result, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, ChatCall{History: history, Message: message})
	m.mu.Unlock()

	if m.GenerateChatFn != nil {
		return m.GenerateChatFn(ctx, history, message)
	}
	return m.Result, m.Err
}
