// internal/providerfactory/factory.go
// Package providerfactory selects and configures the backend implementation
// for a model name. Models are matched to backend kinds by substring, in a
// fixed order; unknown model names are an error the caller treats as fatal.
package providerfactory

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/svbench/internal/appconfig"
	"github.com/mwiater/svbench/internal/logging"
	"github.com/mwiater/svbench/internal/providers"
	"github.com/mwiater/svbench/internal/providers/anthropic"
	"github.com/mwiater/svbench/internal/providers/gemini"
	"github.com/mwiater/svbench/internal/providers/ollama"
	"github.com/mwiater/svbench/internal/providers/openaiapi"
)

// KindForModel maps a model name to its backend kind. Match order matters:
// "alias-code" must resolve to the gateway even though it also contains the
// "code" substring that would otherwise route to Ollama.
func KindForModel(model string) providers.Kind {
	switch {
	case strings.Contains(model, "alias"):
		return providers.KindGateway
	case strings.Contains(model, "gemini"):
		return providers.KindGemini
	case strings.Contains(model, "deepcoder"), strings.Contains(model, "agentica"):
		return providers.KindOpenRouter
	case strings.Contains(model, "gpt"), strings.Contains(model, "o3"):
		return providers.KindOpenAI
	case strings.Contains(model, "claude"):
		return providers.KindAnthropic
	case strings.Contains(model, "qwen"), strings.Contains(model, "code"), strings.Contains(model, "deepseek"):
		return providers.KindOllama
	default:
		return providers.KindUnknown
	}
}

// New returns the Completer serving the given model name.
func New(ctx context.Context, cfg *appconfig.Config, model string) (providers.Completer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}

	kind := KindForModel(model)
	timeout := cfg.RequestTimeout()

	switch kind {
	case providers.KindGateway:
		logging.LogEvent("Backend selected for %s: gateway", model)
		return openaiapi.New("gateway", cfg.Backends.Gateway, timeout), nil
	case providers.KindGemini:
		logging.LogEvent("Backend selected for %s: gemini", model)
		return gemini.New(ctx, cfg.Backends.Gemini)
	case providers.KindOpenRouter:
		logging.LogEvent("Backend selected for %s: openrouter", model)
		backend := cfg.Backends.OpenRouter
		if strings.TrimSpace(backend.BaseURL) == "" {
			backend.BaseURL = "https://openrouter.ai/api/v1"
		}
		return openaiapi.New("openrouter", backend, timeout), nil
	case providers.KindOpenAI:
		logging.LogEvent("Backend selected for %s: openai", model)
		return openaiapi.New("openai", cfg.Backends.OpenAI, timeout), nil
	case providers.KindAnthropic:
		logging.LogEvent("Backend selected for %s: anthropic", model)
		return anthropic.New(cfg.Backends.Anthropic, timeout), nil
	case providers.KindOllama:
		logging.LogEvent("Backend selected for %s: ollama", model)
		return ollama.New(cfg.Backends.Ollama, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported model name: %q", model)
	}
}
