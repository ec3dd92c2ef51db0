package classification

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// scoreKeys are probed in order on an object-shaped prediction.
var scoreKeys = []string{"probability", "confidence", "score", "prob", "likelihood"}

// labelKeys are probed in order on an object-shaped prediction before the
// caller-supplied fallback key is used.
var labelKeys = []string{"class", "label", "name", "predicted_label"}

// toNumber returns v as a finite float64. Numeric strings are accepted because
// several upstream services serialise probabilities as text.
func toNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ExtractScore pulls a raw (not yet normalised) score out of a prediction-like
// value. It never fails; 0 is returned when nothing numeric is found.
func ExtractScore(v any) float64 {
	if n, ok := toNumber(v); ok {
		return n
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	for _, k := range scoreKeys {
		if n, ok := toNumber(obj[k]); ok {
			return n
		}
	}
	best, found := 0.0, false
	for _, k := range sortedKeys(obj) {
		n, ok := toNumber(obj[k])
		if !ok {
			continue
		}
		if !found || n > best {
			best, found = n, true
		}
	}
	return best
}

// NormalizeScore folds percentages into fractions and clamps to [0,1].
// Values in (1,100] are treated as percentages; anything above 100 clamps to 1.
func NormalizeScore(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	if s > 1 && s <= 100 {
		s = s / 100
	}
	return Clamp01(s)
}

// Clamp01 clamps n to [0,1], mapping NaN to 0.
func Clamp01(n float64) float64 {
	if math.IsNaN(n) {
		return 0
	}
	return math.Max(0, math.Min(1, n))
}

// ExtractLabel returns the display label of a prediction-like value, falling
// back to fallbackKey (the map key the prediction was found under, or
// "unknown"). The result is formatted with FormatLabel.
func ExtractLabel(v any, fallbackKey string) string {
	if obj, ok := v.(map[string]any); ok {
		for _, k := range labelKeys {
			if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
				return FormatLabel(s)
			}
		}
	}
	return FormatLabel(fallbackKey)
}

// FormatLabel turns "late_blight" or "Tomato--early-blight" into
// "Late Blight" / "Tomato Early Blight".
func FormatLabel(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, s)
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
