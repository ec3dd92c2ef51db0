package classification

import (
	"encoding/json"
	"math"
	"testing"

	"leafcare/internal/tester"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	tester.NoErr(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestNormalizeScore(t *testing.T) {
	tester.Near(t, NormalizeScore(87), 0.87, 1e-9)
	tester.Near(t, NormalizeScore(0.42), 0.42, 1e-9)
	tester.Eq(t, NormalizeScore(150), 1.0)
	tester.Eq(t, NormalizeScore(100), 1.0)
	tester.Eq(t, NormalizeScore(-3), 0.0)
	tester.Eq(t, NormalizeScore(math.NaN()), 0.0)
	tester.Eq(t, NormalizeScore(math.Inf(1)), 0.0)
}

func TestNormalizeScoreIdempotent(t *testing.T) {
	for _, s := range []float64{-10, 0, 0.3, 1, 1.5, 42, 99.9, 100, 100.1, 1e9} {
		once := NormalizeScore(s)
		tester.Eq(t, NormalizeScore(once), once, s)
	}
}

func TestExtractScore(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"bare number", `0.7`, 0.7},
		{"numeric string", `"87"`, 87},
		{"probability before score", `{"score": 0.1, "probability": 0.9}`, 0.9},
		{"confidence", `{"confidence": 55}`, 55},
		{"likelihood", `{"likelihood": 0.3}`, 0.3},
		{"max of other numerics", `{"a": 0.2, "b": 0.6, "c": "x"}`, 0.6},
		{"no numerics", `{"class": "healthy"}`, 0},
		{"array", `[1,2]`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tester.Eq(t, ExtractScore(decode(t, tc.in)), tc.want)
		})
	}
}

func TestExtractLabel(t *testing.T) {
	tester.Eq(t, ExtractLabel(decode(t, `{"class":"late_blight","label":"x"}`), "k"), "Late Blight")
	tester.Eq(t, ExtractLabel(decode(t, `{"class":"  ","label":"early-blight"}`), "k"), "Early Blight")
	tester.Eq(t, ExtractLabel(decode(t, `{"score":0.2}`), "powdery_mildew"), "Powdery Mildew")
	tester.Eq(t, ExtractLabel(0.4, Unknown), "Unknown")
}

func TestFormatLabel(t *testing.T) {
	tester.Eq(t, FormatLabel("tomato___LATE--blight"), "Tomato Late Blight")
	tester.Eq(t, FormatLabel("  healthy  "), "Healthy")
	tester.Eq(t, FormatLabel(""), "")
}

func TestNormalizeCanonicalShape(t *testing.T) {
	n := Normalize(decode(t, `{
		"predicted_label": "late_blight",
		"top_3": [
			{"label": "early_blight", "score": 0.1},
			{"label": "late_blight", "score": 0.8},
			{"label": "healthy", "score": 0.05},
			{"label": "leaf_mold", "score": 0.05}
		]
	}`))
	tester.Eq(t, n.PredictedLabel, "Late Blight")
	tester.Eq(t, len(n.Top3), 3)
	tester.Eq(t, n.Top3[0].Label, "Late Blight")
	tester.Eq(t, n.Top3[1].Label, "Early Blight")
	tester.Near(t, n.Top1(), 0.8, 1e-9)
}

func TestNormalizeShapeDrift(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		wantLabel string
		wantTop   int
	}{
		{"top3 + percent", `{"top3":[{"class":"healthy","confidence":95}]}`, "Healthy", 1},
		{"predictions array", `{"predictions":[{"name":"rust","prob":0.4},{"name":"mosaic","prob":0.6}]}`, "Mosaic", 2},
		{"any array field", `{"results":[{"label":"spot","probability":"0.5"}]}`, "Spot", 1},
		{"envelope", `{"classification":{"predictedLabel":"powdery_mildew","top_3":[]}}`, "Powdery Mildew", 0},
		{"map form", `{"predictions":{"late_blight":0.7,"healthy":0.2}}`, "Late Blight", 2},
		{"bare array", `[{"label":"healthy","score":0.9}]`, "Healthy", 1},
		{"predicted_class", `{"predicted_class":"target_spot"}`, "Target Spot", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := Normalize(decode(t, tc.in))
			tester.Eq(t, n.PredictedLabel, tc.wantLabel)
			tester.Eq(t, len(n.Top3), tc.wantTop)
		})
	}
}

func TestNormalizeExplicitLabelWins(t *testing.T) {
	n := Normalize(decode(t, `{"label":"healthy","top_3":[{"label":"rust","score":0.9}]}`))
	tester.Eq(t, n.PredictedLabel, "Healthy")
	tester.Eq(t, n.Top3[0].Label, "Rust")
}

func TestNormalizeEmpty(t *testing.T) {
	for _, in := range []string{``, `null`, `{}`, `not json`, `{"top_3": "nope"}`, `42`} {
		n := NormalizeJSON([]byte(in))
		tester.Eq(t, n.PredictedLabel, Unknown, in)
		tester.Eq(t, n.Top3, []Prediction{}, in)
		tester.True(t, n.IsUnknown(), in)
	}
}

func TestNormalizeTopOrderingInvariant(t *testing.T) {
	n := Normalize(decode(t, `{"predictions":[0.1, 55, {"score": 2}, "0.99", null, {"x": 0.3}, 0.5]}`))
	tester.True(t, len(n.Top3) <= MaxTop)
	for i := 0; i+1 < len(n.Top3); i++ {
		tester.True(t, n.Top3[i].Score >= n.Top3[i+1].Score, "descending order")
	}
	for _, p := range n.Top3 {
		tester.True(t, p.Score >= 0 && p.Score <= 1, "clamped")
		tester.Eq(t, p.Label, "Unknown")
	}
}

func TestSeverityScore(t *testing.T) {
	var s *Segmentation
	tester.True(t, s.SeverityScore() == nil)
	s = &Segmentation{Severity: Severity{Score: 42}}
	tester.Eq(t, *s.SeverityScore(), 42.0)
}
