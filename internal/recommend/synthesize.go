package recommend

import (
	"context"
	"fmt"
	"time"

	"leafcare/internal/classification"
	"leafcare/internal/kb"
	"leafcare/internal/llm"
)

const defaultSynthesisTimeout = 20 * time.Second

// Synthesizer asks a generative backend for a context-aware recommendation.
// It makes exactly one attempt; the caller decides how to degrade.
type Synthesizer struct {
	client  llm.Client
	timeout time.Duration
}

func NewSynthesizer(client llm.Client, timeout time.Duration) *Synthesizer {
	if timeout <= 0 {
		timeout = defaultSynthesisTimeout
	}
	return &Synthesizer{client: client, timeout: timeout}
}

// Name identifies the backend, for logs and health output.
func (s *Synthesizer) Name() string { return s.client.Name() }

// Synthesize builds the prompt, calls the backend under the configured
// timeout, validates the answer and blends its confidence. Every failure is
// returned as an error; nothing is partially accepted.
func (s *Synthesizer) Synthesize(ctx context.Context, c classification.Normalized, seg *classification.Segmentation, m kb.MatchResult, rc Context) (Recommendation, error) {
	prompt, input, err := BuildPrompt(c, seg, m, rc)
	if err != nil {
		return Recommendation{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.GenerateJSON(callCtx, prompt, input)
	if err != nil {
		return Recommendation{}, fmt.Errorf("generative service: %w", err)
	}
	out, err := ParseModelOutput(raw)
	if err != nil {
		return Recommendation{}, err
	}

	return Recommendation{
		Mode:               ModeGenerative,
		Priority:           out.Priority,
		Title:              out.Title,
		Summary:            out.Summary,
		Confidence:         BlendConfidence(out.Confidence, c.Top1()),
		KB:                 kbRef(m),
		ImmediateActions:   out.ImmediateActions,
		TreatmentOptions:   out.TreatmentOptions,
		Prevention:         out.Prevention,
		MonitoringPlan:     out.MonitoringPlan,
		QuestionsForFarmer: out.QuestionsForFarmer,
		SafetyNotes:        out.SafetyNotes,
	}, nil
}
