package handler

import (
	"net/http"
	"strings"

	"leafcare/internal/kb"
)

type KBHandler struct {
	catalog *kb.Catalog
	matcher kb.Matcher
}

func NewKBHandler(catalog *kb.Catalog, matcher kb.Matcher) *KBHandler {
	if matcher == nil {
		matcher = catalog
	}
	return &KBHandler{catalog: catalog, matcher: matcher}
}

type kbMatch struct {
	Label        string    `json:"label"`
	Entry        *kb.Entry `json:"entry"`
	MatchedAlias *string   `json:"matchedAlias"`
	MatchScore   float64   `json:"matchScore"`
}

// HandleList returns the whole catalog, or with ?label= the entry that label
// resolves to.
func (h *KBHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if label := strings.TrimSpace(r.URL.Query().Get("label")); label != "" {
		m := h.matcher.Match(label)
		writeJSON(w, http.StatusOK, kbMatch{
			Label:        label,
			Entry:        m.Entry,
			MatchedAlias: m.MatchedAlias,
			MatchScore:   m.Score,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"generic": h.catalog.Generic().ID,
		"entries": h.catalog.Entries(),
	})
}
