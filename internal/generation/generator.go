package generation

import "context"

// Role identifies the author of a conversation turn on the wire.
type Role string

// Roles understood by the upstream API.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of a conversation, ordered oldest first.
type Turn struct {
	Role Role
	Text string
}

// Result is a successful generation outcome.
type Result struct {
	// Text is the generated content. Non-empty on success; absence of
	// content is reported as an error, never as an empty string.
	Text string

	// Model is the candidate that produced the text. The candidate list
	// makes this nondeterministic across calls, so callers that persist
	// generated content record it alongside.
	Model string
}

// Generator produces text via an external LLM service.
//
// Implementations try an ordered list of candidate models until one
// succeeds. Both methods block for the duration of the underlying network
// calls, honor ctx cancellation, and classify failures per this package's
// error taxonomy: ErrAuthFailed when no credential could be obtained (no
// candidates attempted), ErrModelsExhausted wrapping the last
// CandidateError when every candidate failed.
type Generator interface {
	// GenerateText runs a single-turn generation for the given prompt.
	// Returns ErrEmptyPrompt if the prompt is empty or blank.
	GenerateText(ctx context.Context, prompt string) (*Result, error)

	// GenerateChat runs a multi-turn generation. The caller supplies the
	// full prior conversation; implementations append one user turn
	// carrying message (see AppendUserTurn) so the sequence sent upstream
	// always ends with the newest user message. Returns ErrEmptyMessage
	// if the message is empty or blank.
	GenerateChat(ctx context.Context, history []Turn, message string) (*Result, error)
}

// AppendUserTurn merges prior conversation history with a new user message
// into the sequence handed to the upstream call: history in its original
// order, followed by exactly one user turn carrying message. The caller's
// slice is copied, never aliased or mutated. A nil or empty history yields
// just the new turn.
func AppendUserTurn(history []Turn, message string) []Turn {
	turns := make([]Turn, 0, len(history)+1)
	turns = append(turns, history...)
	return append(turns, Turn{Role: RoleUser, Text: message})
}
