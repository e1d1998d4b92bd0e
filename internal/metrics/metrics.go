// Package metrics exposes the planner's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

var (
	RemoteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_requests_total",
			Help: "Outbound requests to the recipe and nutrition APIs",
		},
		[]string{"api", "outcome"},
	)

	RemoteLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remote_request_seconds",
			Help:    "Latency of outbound API requests",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 9),
		},
		[]string{"api"},
	)

	SessionIntents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_intents_total",
			Help: "User intents handled by planner sessions",
		},
		[]string{"intent", "outcome"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Planner sessions currently held in memory",
		},
	)
)

// Registry holds every planner collector.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(RemoteRequests, RemoteLatency, SessionIntents, ActiveSessions)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
