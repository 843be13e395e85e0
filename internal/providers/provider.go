// internal/providers/provider.go

// Package providers defines the interface for sending prompt conversations to
// LLM backends. It provides a common abstraction over the OpenAI-compatible,
// Anthropic, Gemini, and Ollama implementations so the dispatcher never has to
// know which wire protocol a model speaks.
package providers

import "context"

// Roles used in chat conversations.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SystemPrompt is sent ahead of every prompt on backends that accept a system
// message.
const SystemPrompt = "Strictly follow the format to return the answer"

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string
	Content string
}

// Completer is the interface that all backend implementations satisfy. A
// conversation is one or more messages; the initial dispatch uses a single
// user message, the refinement pass replays prior turns.
type Completer interface {
	// Complete sends one conversation to the backend and returns the answer text.
	Complete(ctx context.Context, model string, conversation []Message) (string, error)
	// Close cleans up any resources used by the backend.
	Close() error
}

// Kind identifies a backend implementation. Model names are matched to kinds
// by the provider factory; each kind has exactly one handler.
type Kind int

const (
	KindUnknown Kind = iota
	KindGateway
	KindGemini
	KindOpenRouter
	KindOpenAI
	KindAnthropic
	KindOllama
)

// String returns the kind's short name.
func (k Kind) String() string {
	switch k {
	case KindGateway:
		return "gateway"
	case KindGemini:
		return "gemini"
	case KindOpenRouter:
		return "openrouter"
	case KindOpenAI:
		return "openai"
	case KindAnthropic:
		return "anthropic"
	case KindOllama:
		return "ollama"
	default:
		return "unknown"
	}
}
