package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	RatingDecisionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_decision_count",
			Help: "Total number of rating approval decisions",
		},
		[]string{"decision"}, // decision: approved, rejected
	)

	AssignmentAdmissionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assignment_admission_count",
			Help: "Total number of assignment admission checks",
		},
		[]string{"outcome"}, // outcome: admitted, capacity_exceeded, invalid
	)

	SuggestionComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "suggestion_compute_duration_seconds",
			Help:    "Team suggestion ranking duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	WSClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_clients_connected",
			Help: "Number of websocket change-feed clients currently connected",
		},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementRatingDecision(decision string) {
	RatingDecisionCount.WithLabelValues(decision).Inc()
}

func IncrementAssignmentAdmission(outcome string) {
	AssignmentAdmissionCount.WithLabelValues(outcome).Inc()
}

func RecordSuggestionCompute(duration time.Duration) {
	SuggestionComputeDuration.Observe(duration.Seconds())
}
