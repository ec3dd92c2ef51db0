package handler

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"leafcare/internal/middleware"
	"leafcare/internal/recommend"
)

// maxBodyBytes bounds a recommendation request; classifier payloads are small.
const maxBodyBytes = 1 << 20

type RecommendHandler struct {
	engine *recommend.Engine
	logger *zap.Logger
}

func NewRecommendHandler(engine *recommend.Engine, logger *zap.Logger) *RecommendHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendHandler{engine: engine, logger: logger}
}

// HandleRecommend answers every well-formed POST with 200 and a
// recommendation body. Undecodable input still gets the generic fallback.
// If the client goes away mid-request nothing is written.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	requestID := middleware.RequestIDFrom(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("read request body", zap.String("request_id", requestID), zap.Error(err))
		body = nil
	}
	req, err := recommend.ParseRequest(body)
	if err != nil {
		h.logger.Info("request payload not decodable; answering with generic fallback",
			zap.String("request_id", requestID), zap.Error(err))
	}
	req.RequestID = requestID

	rec, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		h.logger.Debug("client went away", zap.String("request_id", requestID), zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
