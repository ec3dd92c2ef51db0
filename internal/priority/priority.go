package priority

import (
	"fmt"
	"strings"
)

// Priority is the urgency attached to a recommendation.
// Ordering is Low < Moderate < Urgent < Critical.
type Priority string

const (
	Low      Priority = "Low"
	Moderate Priority = "Moderate"
	Urgent   Priority = "Urgent"
	Critical Priority = "Critical"
)

// All lists the priorities in ascending rank.
var All = []Priority{Low, Moderate, Urgent, Critical}

// Rank returns the position of p in the total order, or -1 when p is not a
// known priority.
func (p Priority) Rank() int {
	switch p {
	case Low:
		return 0
	case Moderate:
		return 1
	case Urgent:
		return 2
	case Critical:
		return 3
	default:
		return -1
	}
}

func (p Priority) Valid() bool { return p.Rank() >= 0 }

func (p Priority) String() string { return string(p) }

// Parse accepts the exact enum spelling only; model output is not trusted to
// be case-normalised.
func Parse(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("priority: invalid value %q", s)
	}
	return p, nil
}

// ParseLoose is Parse with case folding and trimming, used for catalog files
// and CLI flags written by people.
func ParseLoose(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range All {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("priority: invalid value %q", s)
}

// Max returns the higher-ranked of a and b. Unknown values lose to known ones.
func Max(a, b Priority) Priority {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}
