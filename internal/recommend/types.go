package recommend

import (
	"leafcare/internal/classification"
	"leafcare/internal/kb"
	"leafcare/internal/priority"
)

// Mode records where a recommendation came from.
type Mode string

const (
	ModeGenerative Mode = "generative"
	ModeFallback   Mode = "fallback"
)

// Recommendation is the final response handed to the UI. It is built fresh
// per request and never shared.
type Recommendation struct {
	Mode               Mode              `json:"mode"`
	Priority           priority.Priority `json:"priority"`
	Title              string            `json:"title"`
	Summary            string            `json:"summary"`
	Confidence         float64           `json:"confidence"`
	KB                 KBRef             `json:"kb"`
	ImmediateActions   []string          `json:"immediateActions"`
	TreatmentOptions   []string          `json:"treatmentOptions"`
	Prevention         []string          `json:"prevention"`
	MonitoringPlan     string            `json:"monitoringPlan"`
	QuestionsForFarmer []string          `json:"questionsForFarmer"`
	SafetyNotes        []string          `json:"safetyNotes"`

	// Error is advisory. It explains a degradation and is never a failure
	// signal; Mode tells the caller which path produced the body.
	Error string `json:"error,omitempty"`

	SeverityPriority priority.Priority `json:"severityPriority,omitempty"`
	RequestID        string            `json:"requestId,omitempty"`
}

// KBRef attributes a recommendation to the knowledge base entry that
// grounded it.
type KBRef struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MatchScore   float64 `json:"matchScore"`
	MatchedAlias *string `json:"matchedAlias"`
}

func kbRef(m kb.MatchResult) KBRef {
	return KBRef{
		ID:           m.Entry.ID,
		Name:         m.Entry.Name,
		MatchScore:   m.Score,
		MatchedAlias: m.MatchedAlias,
	}
}

// Context is optional free-text context supplied by the farmer or UI.
type Context struct {
	Crop     string `json:"crop,omitempty"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Language string `json:"language,omitempty"`
}

// Request is one recommendation request after transport decoding.
type Request struct {
	Classification classification.Normalized
	Segmentation   *classification.Segmentation
	Context        Context
	RequestID      string
}
