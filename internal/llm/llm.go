package llm

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrInvalidJSON is returned when the model answered with no usable text.
	ErrInvalidJSON = errors.New("llm: invalid JSON from model")
	// ErrEmptyResponse is returned when the model returned no candidates.
	ErrEmptyResponse = errors.New("llm: empty response from model")
)

// Client is a JSON-mode text completion backend. The returned bytes are the
// model's raw text; callers must not assume they are valid JSON.
type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error)
	Close() error
}

// Middleware decorates a Client with a cross-cutting concern.
type Middleware func(Client) Client

// Chain wraps c with mws so that the first middleware is the outermost.
func Chain(c Client, mws ...Middleware) Client {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			c = mws[i](c)
		}
	}
	return c
}

// composePrompt appends the grounding input as an indented JSON block.
func composePrompt(prompt string, input any) string {
	if input == nil {
		return prompt
	}
	in, _ := json.MarshalIndent(input, "", "  ")
	return prompt + "\n\n[INPUT JSON]\n" + string(in)
}
