// Package service provides application-level services that orchestrate
// domain entities, persistence, and text generation.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. The API layer maps this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrDiagnosisNotFound indicates the requested diagnosis does not exist.
	// Maps to HTTP 404 Not Found.
	ErrDiagnosisNotFound = errors.New("diagnosis not found")

	// ErrChatNotFound indicates the requested chat session does not exist or
	// belongs to another user. Foreign sessions are deliberately reported as
	// not found rather than forbidden, so their existence is not revealed.
	// Maps to HTTP 404 Not Found.
	ErrChatNotFound = errors.New("chat session not found")
)
