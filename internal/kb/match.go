package kb

import (
	"strings"
	"unicode/utf8"
)

// MaxPartialScore caps substring matches below an exact match.
const MaxPartialScore = 0.9

// MatchResult is the best catalog entry for a predicted label.
// Score is in [0,1]; 0 means nothing matched and Entry is the generic entry.
type MatchResult struct {
	Entry        *Entry
	MatchedAlias *string
	Score        float64
}

// Alias returns the matched alias or "" when the generic entry was used.
func (m MatchResult) Alias() string {
	if m.MatchedAlias == nil {
		return ""
	}
	return *m.MatchedAlias
}

// Matcher maps a predicted label to a catalog entry.
type Matcher interface {
	Match(label string) MatchResult
}

// NormalizeLabel lowercases s and joins whitespace-separated words with "_".
func NormalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// Match scores every alias of every entry against label:
// exact equality scores 1, containment scores min(0.9, len(alias)/len(label)).
// The first best candidate in catalog order wins ties.
func (c *Catalog) Match(label string) MatchResult {
	normalized := NormalizeLabel(label)
	labelLen := utf8.RuneCountInString(normalized)
	if labelLen < 1 {
		labelLen = 1
	}

	var best *MatchResult
	for _, e := range c.entries {
		for _, alias := range e.LabelAliases {
			a := NormalizeLabel(alias)
			if a == "" {
				continue
			}
			var score float64
			switch {
			case normalized == a:
				score = 1
			case strings.Contains(normalized, a):
				score = min(MaxPartialScore, float64(utf8.RuneCountInString(a))/float64(labelLen))
			default:
				continue
			}
			if best == nil || score > best.Score {
				matched := alias
				best = &MatchResult{Entry: e, MatchedAlias: &matched, Score: score}
			}
		}
	}
	if best != nil {
		return *best
	}
	return MatchResult{Entry: c.generic, Score: 0}
}
