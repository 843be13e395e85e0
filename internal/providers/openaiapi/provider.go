// internal/providers/openaiapi/provider.go
// Package openaiapi provides a Completer backed by the OpenAI chat completions
// API. It also serves every OpenAI-compatible endpoint the pipeline talks to:
// the internal gateway and OpenRouter only differ in base URL, API key, and an
// optional fixed remote model name.
package openaiapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mwiater/svbench/internal/appconfig"
	"github.com/mwiater/svbench/internal/logging"
	"github.com/mwiater/svbench/internal/providers"
)

// Provider implements providers.Completer over the chat completions API.
type Provider struct {
	client        openai.Client
	name          string
	modelOverride string
	maxTokens     int64
}

// New constructs a Provider for the given backend settings. name labels log
// lines so gateway, openrouter, and openai traffic stay distinguishable.
func New(name string, backend appconfig.Backend, timeout time.Duration) *Provider {
	opts := []option.RequestOption{
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if strings.TrimSpace(backend.BaseURL) != "" {
		opts = append(opts, option.WithBaseURL(backend.BaseURL))
	}
	if key := backend.APIKey(); key != "" {
		opts = append(opts, option.WithAPIKey(key))
	}

	return &Provider{
		client:        openai.NewClient(opts...),
		name:          name,
		modelOverride: backend.Model,
		maxTokens:     4096,
	}
}

// Complete sends the conversation, prefixed by the standard system prompt, and
// returns the first choice's content.
func (p *Provider) Complete(ctx context.Context, model string, conversation []providers.Message) (string, error) {
	if strings.TrimSpace(p.modelOverride) != "" {
		model = p.modelOverride
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(conversation)+1)
	messages = append(messages, openai.SystemMessage(providers.SystemPrompt))
	for _, msg := range conversation {
		switch msg.Role {
		case providers.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		case providers.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	logging.LogRequest("SVBENCH->LLM", p.name, model, fmt.Sprintf("%d messages", len(messages)))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               model,
		Messages:            messages,
		Temperature:         openai.Float(0),
		TopP:                openai.Float(1),
		MaxCompletionTokens: openai.Int(p.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("%s: chat completion failed: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: chat completion returned no choices", p.name)
	}

	answer := resp.Choices[0].Message.Content
	logging.LogRequest("LLM->SVBENCH", p.name, model, fmt.Sprintf("%d chars", len(answer)))
	return answer, nil
}

// Close implements providers.Completer. The HTTP client needs no teardown.
func (p *Provider) Close() error {
	return nil
}
