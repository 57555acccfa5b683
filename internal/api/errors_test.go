package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/galenhq/galen-api/internal/generation"
	"github.com/galenhq/galen-api/internal/service"
	"github.com/galenhq/galen-api/internal/service/auth"
	"github.com/galenhq/galen-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid refresh token", auth.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"diagnosis not found", service.ErrDiagnosisNotFound, http.StatusNotFound},
		{"chat not found", service.ErrChatNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"empty prompt", generation.ErrEmptyPrompt, http.StatusBadRequest},
		{"empty message", generation.ErrEmptyMessage, http.StatusBadRequest},
		{"generation auth failed", generation.ErrAuthFailed, http.StatusBadGateway},
		{"models exhausted", generation.ErrModelsExhausted, http.StatusBadGateway},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantStatus, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCode_WrappedErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("failed to generate recommendation: %w",
		fmt.Errorf("%w: %w", generation.ErrModelsExhausted, generation.ErrNoContent))
	assert.Equal(t, http.StatusBadGateway, MapErrorToStatusCode(wrapped))

	wrapped = fmt.Errorf("service call failed: %w", service.ErrNotOwned)
	assert.Equal(t, http.StatusForbidden, MapErrorToStatusCode(wrapped))
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"not owned", service.ErrNotOwned, "You do not own this resource"},
		{"diagnosis not found", service.ErrDiagnosisNotFound, "Diagnosis not found"},
		{"chat not found", service.ErrChatNotFound, "Chat session not found"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"generation failure", generation.ErrModelsExhausted, "Generation service unavailable"},
		{"generation auth failure", generation.ErrAuthFailed, "Generation service unavailable"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessage_NeverEchoesUpstreamDetail(t *testing.T) {
	t.Parallel()

	// An exhausted-candidates error carries the last candidate's failure,
	// including whatever body the upstream returned. None of that may
	// reach the client.
	candErr := &generation.CandidateError{
		Model:      "gemini-2.5-pro",
		StatusCode: 500,
		Message:    `{"error": {"message": "internal secret detail"}}`,
	}
	err := fmt.Errorf("%w: %w", generation.ErrModelsExhausted, candErr)

	msg := GetSafeErrorMessage(err)
	assert.Equal(t, "Generation service unavailable", msg)
	assert.NotContains(t, msg, "secret")
	assert.NotContains(t, msg, "gemini")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	err = errors.New("some other error with user@example.com inside")
	got := SanitizeValidationError(err)
	assert.Equal(t, "Validation error", got)
}
