package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "studiocrm"

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuditEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_audit_entries_total",
			Help: "Total number of audit log entries written",
		},
		[]string{"action_type"},
	)

	DeliverableGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_deliverable_generations_total",
			Help: "Total number of deliverable generation attempts by outcome",
		},
		[]string{"provider", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func RecordAuditEntry(actionType string) {
	AuditEntriesTotal.WithLabelValues(actionType).Inc()
}

func RecordGeneration(provider, status string) {
	DeliverableGenerationsTotal.WithLabelValues(provider, status).Inc()
}

func RecordLogin(outcome string) {
	AuthAttemptsCounter.WithLabelValues(outcome).Inc()
}
