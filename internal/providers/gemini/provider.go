// internal/providers/gemini/provider.go
// Package gemini provides a Completer backed by the Gemini API with the
// code-execution tool enabled. Answers concatenate text, executable-code, and
// execution-result parts in candidate order.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mwiater/svbench/internal/appconfig"
	"github.com/mwiater/svbench/internal/logging"
	"github.com/mwiater/svbench/internal/providers"
)

// Provider implements providers.Completer over the Gemini generate-content API.
type Provider struct {
	client *genai.Client
}

// New constructs a Provider for the configured Gemini endpoint.
func New(ctx context.Context, backend appconfig.Backend) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  backend.APIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Provider{client: client}, nil
}

// Complete sends the conversation and flattens the first candidate's parts
// into a single answer string.
func (p *Provider) Complete(ctx context.Context, model string, conversation []providers.Message) (string, error) {
	contents := make([]*genai.Content, 0, len(conversation))
	for _, msg := range conversation {
		role := genai.RoleUser
		if msg.Role == providers.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0)),
		TopP:        genai.Ptr(float32(1)),
		Tools: []*genai.Tool{
			{CodeExecution: &genai.ToolCodeExecution{}},
		},
	}

	logging.LogRequest("SVBENCH->LLM", "gemini", model, fmt.Sprintf("%d messages", len(contents)))

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: generate content returned no candidates")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		switch {
		case part.Text != "":
			parts = append(parts, part.Text)
		case part.ExecutableCode != nil:
			parts = append(parts, part.ExecutableCode.Code)
		case part.CodeExecutionResult != nil:
			parts = append(parts, part.CodeExecutionResult.Output)
		}
	}

	answer := strings.Join(parts, "\n")
	logging.LogRequest("LLM->SVBENCH", "gemini", model, fmt.Sprintf("%d chars", len(answer)))
	return answer, nil
}

// Close implements providers.Completer.
func (p *Provider) Close() error {
	return nil
}
