package vertex

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/galenhq/galen-api/internal/config"
	"github.com/galenhq/galen-api/internal/generation"
	"github.com/galenhq/galen-api/internal/platform/logger"
	"github.com/galenhq/galen-api/internal/redact"
)

// maxErrorBodyLen bounds how much of an upstream error body is kept as the
// candidate failure message. Upstream error payloads can be large and are
// only used for server-side diagnostics.
const maxErrorBodyLen = 512

// Client implements generation.Generator against the Vertex AI
// generateContent endpoints. One Client serves both the single-turn and
// chat paths; candidates are tried in configured order, one attempt each,
// and the first success wins.
type Client struct {
	logger            *slog.Logger
	httpClient        *http.Client
	tokens            TokenSource
	endpoint          string
	projectID         string
	region            string
	models            []string
	systemInstruction string
}

// NewClient creates a Client from the LLM configuration and an already
// constructed token source. Configuration problems surface here as errors
// wrapping generation.ErrInvalidConfig. A missing project ID is logged but
// not fatal: calls proceed and fail upstream instead.
func NewClient(log *slog.Logger, cfg config.LLMConfig, tokens TokenSource) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	if tokens == nil {
		return nil, fmt.Errorf("%w: token source cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: region cannot be empty", generation.ErrInvalidConfig)
	}
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("%w: candidate model list cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.TimeoutMinutes <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", generation.ErrInvalidConfig)
	}

	if cfg.ProjectID == "" {
		log.Warn("llm project ID is not configured; generation calls will fail upstream")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s-aiplatform.googleapis.com", cfg.Region)
	}
	endpoint = strings.TrimRight(endpoint, "/")

	models := make([]string, len(cfg.Models))
	copy(models, cfg.Models)

	return &Client{
		logger: log.With(slog.String("component", "vertex_client")),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMinutes) * time.Minute,
		},
		tokens:            tokens,
		endpoint:          endpoint,
		projectID:         cfg.ProjectID,
		region:            cfg.Region,
		models:            models,
		systemInstruction: cfg.ChatSystemInstruction,
	}, nil
}

// Ensure Client implements generation.Generator.
var _ generation.Generator = (*Client)(nil)

// GenerateText implements generation.Generator.GenerateText. The prompt
// becomes a one-turn conversation with role "user"; no system instruction
// is attached on this path.
func (c *Client) GenerateText(ctx context.Context, prompt string) (*generation.Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, generation.ErrEmptyPrompt
	}
	turns := []generation.Turn{{Role: generation.RoleUser, Text: prompt}}
	return c.invoke(ctx, turns, "")
}

// GenerateChat implements generation.Generator.GenerateChat. The supplied
// history plus one appended user turn is sent with the configured chat
// system instruction. History is caller-owned and used as given; nothing
// is read from storage.
func (c *Client) GenerateChat(ctx context.Context, history []generation.Turn, message string) (*generation.Result, error) {
	if strings.TrimSpace(message) == "" {
		return nil, generation.ErrEmptyMessage
	}
	turns := generation.AppendUserTurn(history, message)
	return c.invoke(ctx, turns, c.systemInstruction)
}

// invoke runs the candidate fallback loop: one token for the whole call,
// then each model in order until one yields extractable text. Only the last
// candidate's failure survives into the returned error; earlier failures
// are logged.
func (c *Client) invoke(ctx context.Context, turns []generation.Turn, systemInstruction string) (*generation.Result, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	token, err := c.tokens.Token(ctx)
	if err != nil {
		log.Error("token acquisition failed", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("%w: %w", generation.ErrAuthFailed, err)
	}

	body, err := buildPayload(turns, systemInstruction)
	if err != nil {
		return nil, fmt.Errorf("building generation payload: %w", err)
	}

	var lastErr *generation.CandidateError
	for _, model := range c.models {
		text, candErr := c.attempt(ctx, model, token, body)
		if candErr == nil {
			log.Debug("generation succeeded",
				slog.String("model", model),
				slog.Int("response_length", len(text)))
			return &generation.Result{Text: text, Model: model}, nil
		}

		log.Warn("candidate model failed, trying next",
			slog.String("model", model),
			slog.Int("status", candErr.StatusCode),
			slog.String("error", redact.Error(candErr)))
		lastErr = candErr
	}

	return nil, fmt.Errorf("%w: %w", generation.ErrModelsExhausted, lastErr)
}

// attempt issues one generateContent call for one candidate model. Any
// failure, including a 2xx response with no extractable text, is reported
// as a CandidateError so the caller can fall through to the next model.
func (c *Client) attempt(ctx context.Context, model, token string, body []byte) (string, *generation.CandidateError) {
	url := fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		c.endpoint, c.projectID, c.region, model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &generation.CandidateError{Model: model, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &generation.CandidateError{Model: model, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &generation.CandidateError{Model: model, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &generation.CandidateError{
			Model:      model,
			StatusCode: resp.StatusCode,
			Message:    truncate(string(data), maxErrorBodyLen),
		}
	}

	text, ok := extractText(data)
	if !ok {
		return "", &generation.CandidateError{
			Model:      model,
			StatusCode: resp.StatusCode,
			Err:        generation.ErrNoContent,
		}
	}

	return text, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
