package generation

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Generator implementations. Callers classify
// failures with errors.Is against these.
var (
	// ErrAuthFailed indicates the bearer credential could not be obtained.
	// The call fails before any candidate model is attempted.
	ErrAuthFailed = errors.New("generation auth failed")

	// ErrModelsExhausted indicates every candidate model failed. The
	// returned error also wraps the last candidate's failure detail.
	ErrModelsExhausted = errors.New("all candidate models failed")

	// ErrNoContent indicates the upstream answered successfully but the
	// response carried no extractable text. Per candidate it is a normal
	// fall-through failure; callers only observe it through
	// ErrModelsExhausted when the last candidate ended this way.
	ErrNoContent = errors.New("no content in model response")

	// ErrEmptyPrompt indicates a single-turn request with an empty prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrEmptyMessage indicates a chat request with an empty new message.
	ErrEmptyMessage = errors.New("chat message cannot be empty")

	// ErrInvalidConfig indicates the generator or its credential source was
	// constructed from invalid configuration. Surfaces at startup.
	ErrInvalidConfig = errors.New("invalid generation configuration")
)

// CandidateError describes one candidate model's failed attempt: a non-2xx
// status, a transport error, or a 2xx response with no extractable text.
// The invoker handles these locally (log, try the next candidate); only the
// last one survives, wrapped inside the ErrModelsExhausted error.
type CandidateError struct {
	// Model is the candidate identifier that failed.
	Model string

	// StatusCode is the upstream HTTP status, or 0 for transport errors.
	StatusCode int

	// Message is a short upstream diagnostic. It may quote the upstream
	// body and must therefore never be sent to clients verbatim.
	Message string

	// Err is the underlying cause, if any (transport error, ErrNoContent).
	Err error
}

// Error implements the error interface.
func (e *CandidateError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("model %q failed with status %d: %s", e.Model, e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("model %q failed: %v", e.Model, e.Err)
	default:
		return fmt.Sprintf("model %q failed: %s", e.Model, e.Message)
	}
}

// Unwrap returns the underlying cause to support errors.Is/errors.As.
func (e *CandidateError) Unwrap() error {
	return e.Err
}
