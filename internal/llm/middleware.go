package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"leafcare/internal/metrics"
)

// WithLogging logs request size, latency and errors.
func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next Client) Client {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next Client
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	start := time.Now()
	l.log.Debug("llm request", zap.String("client", l.next.Name()), zap.Int("prompt_bytes", len(composePrompt(prompt, input))))
	raw, err := l.next.GenerateJSON(ctx, prompt, input)
	if err != nil {
		l.log.Warn("llm error", zap.String("client", l.next.Name()), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return raw, err
	}
	l.log.Debug("llm response", zap.String("client", l.next.Name()), zap.Duration("elapsed", time.Since(start)), zap.Int("bytes", len(raw)))
	return raw, nil
}

// WithMetrics records request counts and latency under the given provider
// label.
func WithMetrics(provider string) Middleware {
	return func(next Client) Client {
		return &instrumented{next: next, provider: provider}
	}
}

type instrumented struct {
	next     Client
	provider string
}

func (m *instrumented) Name() string { return m.next.Name() }
func (m *instrumented) Close() error { return m.next.Close() }

func (m *instrumented) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	start := time.Now()
	raw, err := m.next.GenerateJSON(ctx, prompt, input)
	metrics.LLMRequestDuration.WithLabelValues(m.provider).Observe(time.Since(start).Seconds())
	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		status = "canceled"
	default:
		status = "error"
	}
	metrics.LLMRequestsTotal.WithLabelValues(m.provider, status).Inc()
	return raw, err
}
