package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"leafcare/internal/config"
)

// New builds the configured generative client wrapped with logging, metrics
// and rate limiting. It returns (nil, nil) when no credential is configured,
// which callers treat as "generative recommendations disabled".
func New(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	var base Client
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		base = g
	case config.ProviderAnthropic:
		base = NewAnthropicClient(cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
	return Chain(base,
		WithLogging(logger),
		WithMetrics(cfg.Provider),
		WithRateLimit(cfg.RPS, cfg.Burst),
	), nil
}
