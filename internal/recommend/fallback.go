package recommend

import (
	"slices"

	"leafcare/internal/classification"
	"leafcare/internal/kb"
)

const defaultMonitoringPlan = "Re-check symptoms in 48–72 hours. If symptoms spread to new leaves or neighboring plants, escalate and consider confirmatory diagnosis."

const unavailableNote = "Note: AI recommendations service was unavailable; showing fallback guidance from the local knowledge base."

var fallbackSafetyNotes = []string{
	"Use only crop-registered products and follow label directions.",
	"Wear PPE (gloves, mask/respirator if required) when applying any pesticide.",
	"If you suspect late blight or a fast-spreading disease, contact local extension services promptly.",
}

// BuildFallback derives a complete recommendation from the matched entry and
// the classifier's top-1 score alone. It performs no I/O and cannot fail.
func BuildFallback(c classification.Normalized, m kb.MatchResult, rc Context) Recommendation {
	e := m.Entry
	return Recommendation{
		Mode:               ModeFallback,
		Priority:           e.DefaultPriority,
		Title:              e.Name,
		Summary:            e.Summary,
		Confidence:         classification.Clamp01(c.Top1()),
		KB:                 kbRef(m),
		ImmediateActions:   cloneList(e.ImmediateActions),
		TreatmentOptions:   cloneList(e.TreatmentOptions),
		Prevention:         cloneList(e.Prevention),
		MonitoringPlan:     defaultMonitoringPlan,
		QuestionsForFarmer: fallbackQuestions(rc),
		SafetyNotes:        slices.Clone(fallbackSafetyNotes),
	}
}

func fallbackQuestions(rc Context) []string {
	var q []string
	if rc.Crop == "" {
		q = append(q, "What crop/variety is this?")
	}
	if rc.Location == "" {
		q = append(q, "What is your location/region and current weather (rain/humidity)?")
	}
	return append(q,
		"How many plants are affected (single plant, patch, or the whole field)?",
		"Any recent changes in irrigation, fertilizer, or pesticide sprays?",
	)
}

// cloneList copies catalog slices so callers can never alias shared entries.
func cloneList(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}
