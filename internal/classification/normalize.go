package classification

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Unknown is the predicted label used when nothing could be resolved.
const Unknown = "unknown"

// MaxTop is the number of predictions kept after normalisation.
const MaxTop = 3

// Prediction is one normalised class candidate.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Normalized is the canonical classification shape consumed by the rest of
// the engine.
type Normalized struct {
	PredictedLabel string       `json:"predicted_label"`
	Top3           []Prediction `json:"top_3"`
}

// Top1 returns the score of the best prediction, or 0 when there is none.
func (n Normalized) Top1() float64 {
	if len(n.Top3) == 0 {
		return 0
	}
	return n.Top3[0].Score
}

// IsUnknown reports whether no usable predicted label was found.
func (n Normalized) IsUnknown() bool {
	l := strings.TrimSpace(n.PredictedLabel)
	return l == "" || strings.EqualFold(l, Unknown)
}

var (
	// arrayKeys are the named prediction collections, in probe order.
	arrayKeys = []string{"top_3", "top3", "predictions"}
	// mapKeys may hold a label->score object instead of an array.
	mapKeys = []string{"predictions", "probabilities", "scores"}
	// predictedKeys name the explicit top-level predicted label.
	predictedKeys = []string{"predicted_label", "predictedLabel", "label", "predicted", "predicted_class"}
)

// NormalizeJSON decodes raw and normalises it. Malformed JSON yields the
// empty classification.
func NormalizeJSON(raw []byte) Normalized {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Normalize(nil)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Normalize(nil)
	}
	return Normalize(v)
}

// Normalize converts an arbitrarily shaped classification payload into
// Normalized. It never fails.
func Normalize(raw any) Normalized {
	obj, _ := raw.(map[string]any)
	if inner, ok := obj["classification"].(map[string]any); ok {
		obj = inner
	}

	var top []Prediction
	if arr, ok := findPredictionArray(raw, obj); ok {
		top = make([]Prediction, 0, len(arr))
		for _, el := range arr {
			if el == nil {
				continue
			}
			top = append(top, Prediction{
				Label: ExtractLabel(el, Unknown),
				Score: NormalizeScore(ExtractScore(el)),
			})
		}
	} else if m, ok := findPredictionMap(obj); ok {
		top = make([]Prediction, 0, len(m))
		for _, k := range sortedKeys(m) {
			top = append(top, Prediction{
				Label: ExtractLabel(m[k], k),
				Score: NormalizeScore(ExtractScore(m[k])),
			})
		}
	}

	sort.SliceStable(top, func(i, j int) bool { return top[i].Score > top[j].Score })
	if len(top) > MaxTop {
		top = top[:MaxTop]
	}
	if top == nil {
		top = []Prediction{}
	}

	label := ""
	for _, k := range predictedKeys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			label = FormatLabel(s)
			break
		}
	}
	if label == "" && len(top) > 0 {
		label = top[0].Label
	}
	if label == "" {
		label = Unknown
	}
	return Normalized{PredictedLabel: label, Top3: top}
}

// findPredictionArray probes the named collections first and then any
// array-valued field in sorted key order. A bare top-level array is accepted
// as the collection itself.
func findPredictionArray(raw any, obj map[string]any) ([]any, bool) {
	if arr, ok := raw.([]any); ok {
		return arr, true
	}
	if obj == nil {
		return nil, false
	}
	for _, k := range arrayKeys {
		if arr, ok := obj[k].([]any); ok {
			return arr, true
		}
	}
	for _, k := range sortedKeys(obj) {
		if arr, ok := obj[k].([]any); ok {
			return arr, true
		}
	}
	return nil, false
}

func findPredictionMap(obj map[string]any) (map[string]any, bool) {
	for _, k := range mapKeys {
		if m, ok := obj[k].(map[string]any); ok && len(m) > 0 {
			return m, true
		}
	}
	return nil, false
}
