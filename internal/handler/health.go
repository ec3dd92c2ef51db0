package handler

import (
	"net/http"

	"leafcare/internal/recommend"
)

type HealthHandler struct {
	engine *recommend.Engine
}

func NewHealthHandler(engine *recommend.Engine) *HealthHandler {
	return &HealthHandler{engine: engine}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"generative": h.engine.Generative(),
		"provider":   h.engine.Provider(),
	})
}
