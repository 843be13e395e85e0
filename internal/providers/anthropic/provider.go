// internal/providers/anthropic/provider.go
// Package anthropic provides a Completer backed by the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mwiater/svbench/internal/appconfig"
	"github.com/mwiater/svbench/internal/logging"
	"github.com/mwiater/svbench/internal/providers"
)

const maxTokens = 8000

// Provider implements providers.Completer over the Messages API.
type Provider struct {
	client anthropic.Client
}

// New constructs a Provider for the configured Anthropic endpoint.
func New(backend appconfig.Backend, timeout time.Duration) *Provider {
	opts := []option.RequestOption{
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if strings.TrimSpace(backend.BaseURL) != "" {
		opts = append(opts, option.WithBaseURL(backend.BaseURL))
	}
	if key := backend.APIKey(); key != "" {
		opts = append(opts, option.WithAPIKey(key))
	}

	return &Provider{client: anthropic.NewClient(opts...)}
}

// Complete sends the conversation and returns the concatenation of the
// response's text blocks. No system prompt is sent; the model is expected to
// follow the format from the user message alone.
func (p *Provider) Complete(ctx context.Context, model string, conversation []providers.Message) (string, error) {
	messages := make([]anthropic.MessageParam, 0, len(conversation))
	for _, msg := range conversation {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == providers.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	logging.LogRequest("SVBENCH->LLM", "anthropic", model, fmt.Sprintf("%d messages", len(messages)))

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: message request failed: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("anthropic: message returned no content")
	}

	var builder strings.Builder
	for _, block := range resp.Content {
		builder.WriteString(block.Text)
	}
	answer := builder.String()
	logging.LogRequest("LLM->SVBENCH", "anthropic", model, fmt.Sprintf("%d chars", len(answer)))
	return answer, nil
}

// Close implements providers.Completer.
func (p *Provider) Close() error {
	return nil
}
