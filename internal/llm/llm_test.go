package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"leafcare/internal/config"
	"leafcare/internal/tester"
)

type recorder struct {
	name  string
	trace *[]string
	next  Client
}

func (r *recorder) Name() string { return r.next.Name() }
func (r *recorder) Close() error { return r.next.Close() }
func (r *recorder) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	*r.trace = append(*r.trace, r.name)
	return r.next.GenerateJSON(ctx, prompt, input)
}

func recording(name string, trace *[]string) Middleware {
	return func(next Client) Client { return &recorder{name: name, trace: trace, next: next} }
}

func TestChainOrderAndNilSkip(t *testing.T) {
	var trace []string
	fake := NewFakeClient(`{}`)
	c := Chain(fake, recording("outer", &trace), nil, recording("inner", &trace))
	_, err := c.GenerateJSON(context.Background(), "p", nil)
	tester.NoErr(t, err)
	tester.Eq(t, trace, []string{"outer", "inner"})
	tester.Eq(t, fake.Calls(), 1)
}

func TestComposePrompt(t *testing.T) {
	tester.Eq(t, composePrompt("p", nil), "p")
	out := composePrompt("p", map[string]any{"a": 1})
	tester.True(t, strings.HasPrefix(out, "p\n\n[INPUT JSON]\n{"))
	tester.True(t, strings.Contains(out, `"a": 1`))
}

func TestFakeClient(t *testing.T) {
	f := NewFakeClient(`{"ok":true}`)
	raw, err := f.GenerateJSON(context.Background(), "hello", 3)
	tester.NoErr(t, err)
	tester.Eq(t, string(raw), `{"ok":true}`)
	p, in := f.LastPrompt()
	tester.Eq(t, p, "hello")
	tester.Eq(t, in, any(3))

	f.Err = errors.New("quota exceeded")
	_, err = f.GenerateJSON(context.Background(), "hello", nil)
	tester.ErrContains(t, err, "quota")

	tester.NoErr(t, f.Close())
	tester.True(t, f.Closed())
}

func TestFakeClientBlockHonoursCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := &FakeClient{Block: true}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := f.GenerateJSON(ctx, "p", nil)
	tester.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRateLimitDisabled(t *testing.T) {
	tester.True(t, WithRateLimit(0, 5) == nil)
}

func TestRateLimitWaitsAndCancels(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := Chain(NewFakeClient(`{}`), WithRateLimit(0.001, 1))
	defer c.Close()

	_, err := c.GenerateJSON(context.Background(), "p", nil)
	tester.NoErr(t, err, "burst token")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.GenerateJSON(ctx, "p", nil)
	tester.True(t, errors.Is(err, context.DeadlineExceeded), "second call waits for a token")
}

func TestLoggingAndMetricsPassThrough(t *testing.T) {
	f := NewFakeClient(`{"x":1}`)
	c := Chain(f, WithLogging(zap.NewNop()), WithMetrics("test"))
	raw, err := c.GenerateJSON(context.Background(), "p", nil)
	tester.NoErr(t, err)
	tester.Eq(t, string(raw), `{"x":1}`)
	tester.Eq(t, c.Name(), "FakeLLM")

	f.Err = errors.New("boom")
	_, err = c.GenerateJSON(context.Background(), "p", nil)
	tester.ErrContains(t, err, "boom")
}

func TestNewDisabledWithoutKey(t *testing.T) {
	c, err := New(context.Background(), config.LLMConfig{Provider: config.ProviderGemini}, zap.NewNop())
	tester.NoErr(t, err)
	tester.True(t, c == nil)
}

func TestNewAnthropic(t *testing.T) {
	c, err := New(context.Background(), config.LLMConfig{
		Provider: config.ProviderAnthropic,
		APIKey:   "test-key",
		Model:    "claude-test",
	}, zap.NewNop())
	tester.NoErr(t, err)
	tester.Eq(t, c.Name(), "Anthropic:claude-test")
	tester.NoErr(t, c.Close())
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{Provider: "mystery", APIKey: "k"}, zap.NewNop())
	tester.ErrContains(t, err, "unknown provider")
}
