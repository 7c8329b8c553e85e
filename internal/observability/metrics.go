package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the application-specific Prometheus collectors.
var Registry = prometheus.NewRegistry()

var (
	generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindbloom",
			Subsystem: "reflection",
			Name:      "generations_total",
			Help:      "Generation attempts by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	crisisFlags = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mindbloom",
			Subsystem: "journal",
			Name:      "crisis_flags_total",
			Help:      "Journal entries flagged by crisis keyword detection.",
		},
	)
)

func init() {
	Registry.MustRegister(generations, crisisFlags)
}

// RecordGeneration counts one orchestrator outcome ("ok", "unavailable", "call_failed", "empty", "skipped").
func RecordGeneration(operation, outcome string) {
	generations.WithLabelValues(operation, outcome).Inc()
}

// RecordCrisisFlag counts a flagged journal entry.
func RecordCrisisFlag() {
	crisisFlags.Inc()
}

// MetricsHandler exposes Registry in the Prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
