package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"leafcare/internal/kb"
	"leafcare/internal/metrics"
	"leafcare/internal/priority"
)

const unknownLabelError = "Could not parse classification payload; returned generic fallback recommendations."

// Engine reconciles the knowledge-base fallback with an optional generative
// answer and arbitrates the final priority against segmentation severity.
// It is safe for concurrent use.
type Engine struct {
	matcher kb.Matcher
	synth   *Synthesizer
	logger  *zap.Logger
}

// NewEngine builds an engine. synth may be nil, in which case every request
// is answered from the knowledge base.
func NewEngine(matcher kb.Matcher, synth *Synthesizer, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{matcher: matcher, synth: synth, logger: logger}
}

// Generative reports whether a generative backend is configured.
func (e *Engine) Generative() bool { return e.synth != nil }

// Provider names the generative backend, or "" when none is configured.
func (e *Engine) Provider() string {
	if e.synth == nil {
		return ""
	}
	return e.synth.Name()
}

// Recommend always produces a recommendation unless ctx is canceled by the
// caller, in which case it returns ctx.Err() and no body.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Recommendation, error) {
	if err := ctx.Err(); err != nil {
		metrics.RecommendationsCanceled.Inc()
		return nil, err
	}
	start := time.Now()

	c := req.Classification
	m := e.matcher.Match(c.PredictedLabel)
	metrics.KBMatchesTotal.WithLabelValues(m.Entry.ID).Inc()

	var rec Recommendation
	switch {
	case c.IsUnknown():
		rec = BuildFallback(c, m, req.Context)
		rec.Error = unknownLabelError
	case e.synth == nil:
		rec = BuildFallback(c, m, req.Context)
	default:
		gen, err := e.synth.Synthesize(ctx, c, req.Segmentation, m, req.Context)
		if err != nil {
			if ctx.Err() != nil {
				metrics.RecommendationsCanceled.Inc()
				e.logger.Info("recommendation canceled",
					zap.String("request_id", req.RequestID),
					zap.Error(ctx.Err()))
				return nil, ctx.Err()
			}
			metrics.GenerativeFallbacks.Inc()
			e.logger.Warn("generative recommendation failed; using fallback",
				zap.String("request_id", req.RequestID),
				zap.String("provider", e.synth.Name()),
				zap.Error(err))
			rec = BuildFallback(c, m, req.Context)
			rec.Error = err.Error()
			rec.SafetyNotes = append(rec.SafetyNotes, unavailableNote)
		} else {
			rec = gen
		}
	}

	sev := priority.FromSeverity(c.PredictedLabel, req.Segmentation.SeverityScore())
	rec.SeverityPriority = sev
	rec.Priority = priority.Max(sev, rec.Priority)
	rec.RequestID = req.RequestID

	metrics.RecommendationsTotal.WithLabelValues(string(rec.Mode), string(rec.Priority)).Inc()
	e.logger.Info("recommendation",
		zap.String("request_id", req.RequestID),
		zap.String("label", c.PredictedLabel),
		zap.String("mode", string(rec.Mode)),
		zap.String("kb_id", rec.KB.ID),
		zap.Float64("kb_score", rec.KB.MatchScore),
		zap.String("severity_priority", string(sev)),
		zap.String("priority", string(rec.Priority)),
		zap.Duration("latency", time.Since(start)))
	return &rec, nil
}
