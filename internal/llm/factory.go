package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/lingo/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	slog.Debug("llm provider ready", "provider", cfg.Provider, "model", base.ModelID(), "timeout", cfg.Timeout)

	return Wrap(base, cfg, eventRepo), nil
}

// Wrap applies the standard middleware chain to base:
// caller → timeout → retry → logging → base.
// A nil eventRepo skips event logging.
func Wrap(base Provider, cfg Config, eventRepo store.EventRepo) Provider {
	p := base
	if eventRepo != nil {
		p = WithLogging(p, eventRepo)
	}
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout)
}
