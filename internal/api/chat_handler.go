package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/galenhq/galen-api/internal/api/shared"
	"github.com/galenhq/galen-api/internal/generation"
	"github.com/galenhq/galen-api/internal/service"
)

// ChatHandler handles the chat endpoints. The server is stateless between
// turns: the client supplies the full prior history on every request, and
// stored transcripts exist for display only.
type ChatHandler struct {
	chatService service.ChatService
	validator   *validator.Validate
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   validator.New(),
	}
}

// Converse handles POST /api/chat.
func (h *ChatHandler) Converse(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ChatRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	var chatID *uuid.UUID
	if req.ChatID != "" {
		id, err := uuid.Parse(req.ChatID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid chat_id")
			return
		}
		chatID = &id
	}

	history := make([]generation.Turn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, generation.Turn{
			Role: generation.Role(turn.Role),
			Text: turn.Text,
		})
	}

	reply, err := h.chatService.Converse(r.Context(), userID, chatID, history, req.Message)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ChatResponse{
		ChatID: reply.ChatID,
		Reply:  reply.Reply,
		Model:  reply.Model,
	})
}

// GetTranscript handles GET /api/chats/{id}.
func (h *ChatHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	chatID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	transcript, err := h.chatService.GetTranscript(r.Context(), userID, chatID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	messages := make([]ChatMessageResponse, 0, len(transcript.Messages))
	for _, msg := range transcript.Messages {
		messages = append(messages, ChatMessageResponse{
			ID:        msg.ID,
			Role:      string(msg.Role),
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ChatTranscriptResponse{
		ChatID:    transcript.Session.ID,
		Title:     transcript.Session.Title,
		CreatedAt: transcript.Session.CreatedAt,
		UpdatedAt: transcript.Session.UpdatedAt,
		Messages:  messages,
	})
}
