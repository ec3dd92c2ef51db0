package llm

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// FakeClient returns a scripted response for offline runs and tests.
// With Block set it waits for the context to end, which lets tests exercise
// timeouts and caller cancellation.
type FakeClient struct {
	Response string
	Err      error
	Delay    time.Duration
	Block    bool

	mu          sync.Mutex
	calls       int
	lastPrompt  string
	lastInput   any
	closeCalled bool
}

func NewFakeClient(response string) *FakeClient { return &FakeClient{Response: response} }

func (f *FakeClient) Name() string { return "FakeLLM" }

func (f *FakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalled = true
	return nil
}

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls++
	f.lastPrompt = prompt
	f.lastInput = input
	f.mu.Unlock()

	if f.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.Delay > 0 {
		t := time.NewTimer(f.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return json.RawMessage(f.Response), nil
}

// Calls returns how many times GenerateJSON was invoked.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// LastPrompt returns the prompt and input of the most recent call.
func (f *FakeClient) LastPrompt() (string, any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPrompt, f.lastInput
}

func (f *FakeClient) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeCalled
}
