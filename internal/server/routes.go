package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leafcare/internal/handler"
	"leafcare/internal/middleware"
)

func NewMux(
	recommendHandler *handler.RecommendHandler,
	kbHandler *handler.KBHandler,
	healthHandler *handler.HealthHandler,
) http.Handler {
	mux := http.NewServeMux()

	// API
	mux.HandleFunc("/api/recommendations", recommendHandler.HandleRecommend)
	mux.HandleFunc("/api/kb", kbHandler.HandleList)

	// Ops
	mux.HandleFunc("/healthz", healthHandler.HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	// Middleware
	return middleware.CORS(middleware.RequestID(mux))
}
