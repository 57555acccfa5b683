package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/domain"
)

// Request/response payloads for the API endpoints.

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is the successful response for register and login.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    string    `json:"expires_at"`
}

// RefreshTokenRequest is the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse carries the rotated token pair.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateDiagnosisRequest is the payload for recording a diagnosis.
type CreateDiagnosisRequest struct {
	Condition string `json:"condition" validate:"required,min=1,max=500"`
	Symptoms  string `json:"symptoms"  validate:"max=5000"`
	Notes     string `json:"notes"     validate:"max=5000"`
}

// DiagnosisResponse is one diagnosis record as returned to clients.
type DiagnosisResponse struct {
	ID        uuid.UUID `json:"id"`
	Condition string    `json:"condition"`
	Symptoms  string    `json:"symptoms,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDiagnosisResponse(d *domain.Diagnosis) DiagnosisResponse {
	return DiagnosisResponse{
		ID:        d.ID,
		Condition: d.Condition,
		Symptoms:  d.Symptoms,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// RecommendationResponse is one persisted recommendation.
type RecommendationResponse struct {
	ID          uuid.UUID `json:"id"`
	DiagnosisID uuid.UUID `json:"diagnosis_id"`
	Content     string    `json:"content"`
	Model       string    `json:"model"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRecommendationResponse(rec *domain.Recommendation) RecommendationResponse {
	return RecommendationResponse{
		ID:          rec.ID,
		DiagnosisID: rec.DiagnosisID,
		Content:     rec.Content,
		Model:       rec.Model,
		CreatedAt:   rec.CreatedAt,
	}
}

// ChatTurn is one prior conversation turn supplied by the client. The
// server holds no conversational state between calls; the client sends
// the full history it wants the model to see.
type ChatTurn struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required,min=1"`
}

// ChatRequest is the payload for one chat turn.
type ChatRequest struct {
	// ChatID is the session to record the turn under. Empty means start
	// a new session.
	ChatID  string     `json:"chat_id,omitempty" validate:"omitempty,uuid"`
	History []ChatTurn `json:"history,omitempty" validate:"omitempty,dive"`
	Message string     `json:"message" validate:"required,min=1"`
}

// ChatResponse is the reply to one chat turn.
type ChatResponse struct {
	ChatID uuid.UUID `json:"chat_id"`
	Reply  string    `json:"reply"`
	Model  string    `json:"model"`
}

// ChatMessageResponse is one stored message in a transcript.
type ChatMessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatTranscriptResponse is a stored session with its messages in
// chronological order.
type ChatTranscriptResponse struct {
	ChatID    uuid.UUID             `json:"chat_id"`
	Title     string                `json:"title,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	Messages  []ChatMessageResponse `json:"messages"`
}
