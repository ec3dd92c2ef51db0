package priority

import (
	"math"
	"strings"
)

// IsHealthyLabel reports whether a predicted label describes a healthy or
// normal leaf.
func IsHealthyLabel(label string) bool {
	l := strings.ToLower(label)
	return strings.Contains(l, "healthy") || strings.Contains(l, "normal")
}

// FromSeverity derives a priority from the classifier label and an optional
// segmentation severity score in [0,100]. A nil (or NaN) score means no
// segmentation result was available.
func FromSeverity(label string, score *float64) Priority {
	if IsHealthyLabel(label) {
		return Low
	}
	if score == nil || math.IsNaN(*score) {
		return Moderate
	}
	s := *score
	switch {
	case s < 25:
		return Moderate
	case s < 50:
		return Urgent
	case s < 75:
		return Urgent
	default:
		return Critical
	}
}
