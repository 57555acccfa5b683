package service

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/galenhq/galen-api/internal/domain"
)

// recommendationPromptText is the template rendered into the single-turn
// prompt for the recommendation path. The generation core is agnostic to
// its content; only this package knows the prompt's shape.
const recommendationPromptText = `You are a careful health assistant. A patient has the following diagnosis on record.

Condition: {{.Condition}}
{{- if .Symptoms}}
Reported symptoms: {{.Symptoms}}
{{- end}}
{{- if .Notes}}
Clinician notes: {{.Notes}}
{{- end}}

Write practical, plain-language lifestyle and self-care recommendations for this patient. Recommend seeing a clinician for anything that needs professional attention, and do not present your answer as a medical diagnosis.`

// promptBuilder renders recommendation prompts from diagnosis fields.
// The template is parsed once at construction; rendering failures are
// reported as errors, never panics.
type promptBuilder struct {
	tmpl *template.Template
}

func newPromptBuilder() (*promptBuilder, error) {
	tmpl, err := template.New("recommendation").Parse(recommendationPromptText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recommendation prompt template: %w", err)
	}
	return &promptBuilder{tmpl: tmpl}, nil
}

// Render produces the prompt for one diagnosis.
func (b *promptBuilder) Render(diagnosis *domain.Diagnosis) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, diagnosis); err != nil {
		return "", fmt.Errorf("failed to render recommendation prompt: %w", err)
	}
	return buf.String(), nil
}
