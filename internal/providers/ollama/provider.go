// internal/providers/ollama/provider.go
// Package ollama provides a Completer backed by Ollama-compatible HTTP
// endpoints. Single-prompt conversations go through /api/generate, multi-turn
// conversations through /api/chat; both run non-streaming with deterministic
// sampling options.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mwiater/svbench/internal/appconfig"
	"github.com/mwiater/svbench/internal/logging"
	"github.com/mwiater/svbench/internal/providers"
)

// Provider implements providers.Completer using the Ollama HTTP API.
type Provider struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// New constructs a Provider for the configured Ollama host.
func New(backend appconfig.Backend, timeout time.Duration) *Provider {
	baseURL := strings.TrimSuffix(backend.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		baseURL: baseURL,
		timeout: timeout,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// samplingOptions pins generation to deterministic output.
var samplingOptions = map[string]any{
	"temperature": 0,
	"top_p":       1,
}

// Complete routes the conversation to /api/generate or /api/chat depending on
// whether prior turns exist.
func (p *Provider) Complete(ctx context.Context, model string, conversation []providers.Message) (string, error) {
	if len(conversation) == 0 {
		return "", fmt.Errorf("ollama: empty conversation")
	}
	if len(conversation) == 1 {
		return p.generate(ctx, model, conversation[0].Content)
	}
	return p.chat(ctx, model, conversation)
}

func (p *Provider) generate(ctx context.Context, model, prompt string) (string, error) {
	payload := map[string]any{
		"model":   model,
		"prompt":  prompt,
		"stream":  false,
		"options": samplingOptions,
	}

	body, err := p.post(ctx, "/api/generate", model, payload)
	if err != nil {
		return "", err
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ollama: parse generate response: %w", err)
	}
	return strings.TrimSpace(parsed.Response), nil
}

func (p *Provider) chat(ctx context.Context, model string, conversation []providers.Message) (string, error) {
	messages := make([]chatMessage, len(conversation))
	for i, msg := range conversation {
		messages[i] = chatMessage{Role: msg.Role, Content: msg.Content}
	}
	payload := map[string]any{
		"model":    model,
		"messages": messages,
		"stream":   false,
		"options":  samplingOptions,
	}

	body, err := p.post(ctx, "/api/chat", model, payload)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ollama: parse chat response: %w", err)
	}
	return parsed.Message.Content, nil
}

func (p *Provider) post(ctx context.Context, path, model string, payload map[string]any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ollama: marshal request: %w", err)
	}
	logging.LogRequest("SVBENCH->LLM", "ollama", model, body)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	logging.LogRequest("LLM->SVBENCH", "ollama", model, respBody)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama: %s returned %s: %s", path, resp.Status, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}

// Close implements providers.Completer.
func (p *Provider) Close() error {
	return nil
}
