// Package observability holds the prometheus collectors of both binaries.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BoardOperations counts board operations by outcome (success,
	// network_error, server_error, malformed_response, skipped).
	BoardOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_board",
		Subsystem: "client",
		Name:      "operations_total",
		Help:      "Board operations against the activities API, by operation and outcome.",
	}, []string{"operation", "outcome"})

	// ActiveSessions tracks live board sessions.
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activity_board",
		Subsystem: "sessions",
		Name:      "active",
		Help:      "Number of board sessions currently held in memory.",
	})

	// Registrations counts API-side signup and unregister attempts by result.
	Registrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_api",
		Subsystem: "registrations",
		Name:      "total",
		Help:      "Signup and unregister attempts handled by the API, by action and result.",
	}, []string{"action", "result"})
)

func init() {
	prometheus.MustRegister(BoardOperations, ActiveSessions, Registrations)
}

// RecordBoardOperation increments the board operation counter.
func RecordBoardOperation(operation, outcome string) {
	BoardOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordRegistration increments the API registration counter.
func RecordRegistration(action, result string) {
	Registrations.WithLabelValues(action, result).Inc()
}
