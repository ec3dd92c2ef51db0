package recommend

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"leafcare/internal/classification"
	"leafcare/internal/kb"
	"leafcare/internal/util/jsonutil"
)

// promptField describes one key of the JSON object the model must return.
type promptField struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

var outputFields = []promptField{
	{"priority", "string", true, "one of Low | Moderate | Urgent | Critical"},
	{"title", "string", true, "short title"},
	{"summary", "string", true, "2-4 short sentences"},
	{"confidence", "number", true, "0..1; use classifier top-1 score as base, reduce if uncertainty is high"},
	{"immediateActions", "[]string", false, "3-6 bullets"},
	{"treatmentOptions", "[]string", false, "2-6 bullets"},
	{"prevention", "[]string", false, "3-6 bullets"},
	{"monitoringPlan", "string", false, "1-3 sentences"},
	{"questionsForFarmer", "[]string", false, "2-6 bullets"},
	{"safetyNotes", "[]string", false, "2-5 bullets"},
}

var promptRules = []string{
	"Output MUST be valid JSON ONLY (no markdown, no backticks).",
	"Be honest about uncertainty; do not overclaim diagnosis.",
	"Do not propose illegal/unsafe chemicals. Always advise following local labels and regulations.",
	"Prefer integrated pest management (IPM): cultural + sanitation + monitoring + then products if needed.",
}

const promptPurpose = `You are an agronomy decision-support agent.
You will be given a plant leaf classifier output and a SMALL internal knowledge base entry that best matches the label.
Goal: produce safe, actionable, field-friendly recommendations.`

// promptInput is the grounding payload appended to the prompt as JSON.
type promptInput struct {
	Classifier    classification.Normalized `json:"classifier"`
	Context       promptContext             `json:"context"`
	Segmentation  *promptSegmentation       `json:"segmentation,omitempty"`
	KnowledgeBase promptKB                  `json:"knowledge_base_match"`
}

type promptContext struct {
	Crop     string `json:"crop,omitempty"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type promptSegmentation struct {
	SeverityScore float64 `json:"severity_score"`
	Category      string  `json:"category,omitempty"`
}

type promptKB struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Summary          string   `json:"summary"`
	ImmediateActions []string `json:"immediateActions"`
	TreatmentOptions []string `json:"treatmentOptions"`
	Prevention       []string `json:"prevention"`
	WhenToEscalate   []string `json:"whenToEscalate"`
	DefaultPriority  string   `json:"defaultPriority"`
	MatchedAlias     *string  `json:"matchedAlias"`
	MatchScore       float64  `json:"matchScore"`
}

// BuildPrompt renders the instruction text and the grounding input for one
// generative attempt. Scores in the classifier block are clamped again so a
// hand-built Normalized cannot leak out-of-range values to the model.
func BuildPrompt(c classification.Normalized, seg *classification.Segmentation, m kb.MatchResult, rc Context) (string, any, error) {
	lang := strings.TrimSpace(rc.Language)
	if lang == "" {
		lang = defaultLanguage
	}

	top := make([]classification.Prediction, 0, classification.MaxTop)
	for i, p := range c.Top3 {
		if i == classification.MaxTop {
			break
		}
		top = append(top, classification.Prediction{Label: p.Label, Score: classification.Clamp01(p.Score)})
	}

	in := promptInput{
		Classifier: classification.Normalized{PredictedLabel: c.PredictedLabel, Top3: top},
		Context:    promptContext{Crop: rc.Crop, Location: rc.Location, Notes: rc.Notes},
		KnowledgeBase: promptKB{
			ID:               m.Entry.ID,
			Name:             m.Entry.Name,
			Summary:          m.Entry.Summary,
			ImmediateActions: m.Entry.ImmediateActions,
			TreatmentOptions: m.Entry.TreatmentOptions,
			Prevention:       m.Entry.Prevention,
			WhenToEscalate:   m.Entry.WhenToEscalate,
			DefaultPriority:  string(m.Entry.DefaultPriority),
			MatchedAlias:     m.MatchedAlias,
			MatchScore:       m.Score,
		},
	}
	if seg != nil {
		in.Segmentation = &promptSegmentation{SeverityScore: seg.Severity.Score, Category: seg.Category.Label}
	}

	schema, err := jsonutil.MarshalNoEscapeIndent(schemaExample(), "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("recommend: encode schema: %w", err)
	}

	var buf bytes.Buffer
	writeSection(&buf, "PURPOSE", promptPurpose)
	writeSection(&buf, "RULES", formatList(append(slices.Clone(promptRules), "Respond in language: "+lang+".")))
	writeSection(&buf, "INPUT", "The [INPUT JSON] block holds the classifier output, optional context, and the knowledge base match. Use the knowledge base entry to ground actions.")
	writeSection(&buf, "OUTPUT", formatFields(outputFields))
	writeSection(&buf, "OUTPUT_FORMAT", "Return JSON with EXACT keys:\n"+string(schema))
	writeSection(&buf, "LANGUAGE", lang)
	return strings.TrimSpace(buf.String()) + "\n", in, nil
}

func schemaExample() map[string]any {
	out := make(map[string]any, len(outputFields))
	for _, f := range outputFields {
		if strings.HasPrefix(f.Type, "[]") {
			out[f.Name] = []string{f.Description}
		} else {
			out[f.Name] = f.Description
		}
	}
	return out
}

func formatFields(fields []promptField) string {
	var buf strings.Builder
	for _, f := range fields {
		req := "optional"
		if f.Required {
			req = "required"
		}
		fmt.Fprintf(&buf, "- %s (%s, %s): %s\n", f.Name, f.Type, req, f.Description)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatList(items []string) string {
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
