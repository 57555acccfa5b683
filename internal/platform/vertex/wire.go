package vertex

import (
	"encoding/json"

	"github.com/galenhq/galen-api/internal/generation"
)

// Wire shapes for the generateContent endpoint family.

type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type generateRequest struct {
	Contents          []wireContent `json:"contents"`
	SystemInstruction *wireContent  `json:"systemInstruction,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []wirePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// buildPayload converts a turn sequence and optional system instruction into
// the JSON body sent upstream. The systemInstruction field is omitted
// entirely when no instruction is configured for the path.
func buildPayload(turns []generation.Turn, systemInstruction string) ([]byte, error) {
	req := generateRequest{
		Contents: make([]wireContent, 0, len(turns)),
	}
	for _, t := range turns {
		req.Contents = append(req.Contents, wireContent{
			Role:  string(t.Role),
			Parts: []wirePart{{Text: t.Text}},
		})
	}
	if systemInstruction != "" {
		req.SystemInstruction = &wireContent{
			Parts: []wirePart{{Text: systemInstruction}},
		}
	}
	return json.Marshal(req)
}

// extractText navigates the upstream response envelope: first candidate,
// its content, its first part, its text field. Any missing, malformed, or
// empty layer degrades to ("", false) so the invoker can treat the
// candidate as failed instead of crashing the call.
func extractText(body []byte) (string, bool) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false
	}
	if len(resp.Candidates) == 0 {
		return "", false
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", false
	}
	if parts[0].Text == "" {
		return "", false
	}
	return parts[0].Text, true
}
