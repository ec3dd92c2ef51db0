package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsTotal counts final recommendations by provenance and
	// arbitrated priority.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leafcare_recommendations_total",
			Help: "Total number of recommendations produced",
		},
		[]string{"mode", "priority"},
	)

	// RecommendationsCanceled counts requests abandoned by their caller.
	RecommendationsCanceled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leafcare_recommendations_canceled_total",
			Help: "Total number of recommendation requests canceled by the caller",
		},
	)

	// GenerativeFallbacks counts generative attempts that degraded to the
	// knowledge-base fallback.
	GenerativeFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leafcare_generative_fallbacks_total",
			Help: "Total number of generative failures that degraded to fallback",
		},
	)

	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leafcare_llm_requests_total",
			Help: "Total number of generative service requests",
		},
		[]string{"provider", "status"}, // status: ok/error/canceled
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leafcare_llm_request_duration_seconds",
			Help:    "Generative service request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~1min
		},
		[]string{"provider"},
	)

	KBMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leafcare_kb_matches_total",
			Help: "Total number of knowledge base matches by entry",
		},
		[]string{"entry"},
	)
)
