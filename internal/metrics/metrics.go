package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{
	0.005, // 5ms
	0.01,  // 10ms
	0.025, // 25ms
	0.05,  // 50ms
	0.1,   // 100ms
	0.25,  // 250ms
	0.5,   // 500ms
	1.0,   // 1s
	2.5,   // 2.5s
	5.0,   // 5s
	10.0,  // 10s
}

var (
	// BackendCallDuration tracks the latency of calls to the data backend
	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lukitas_backend_call_duration_seconds",
			Help:    "Duration of data backend calls in seconds",
			Buckets: latencyBuckets,
		},
		[]string{"operation", "status"}, // status: success or failure
	)

	// DashboardActions counts admin actions by outcome
	DashboardActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lukitas_dashboard_actions_total",
			Help: "Admin dashboard actions by kind and outcome",
		},
		[]string{"action", "outcome"},
	)

	// HTTPRequestDuration tracks dashboard page and form handling latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lukitas_http_request_duration_seconds",
			Help:    "Duration of dashboard HTTP requests in seconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "route", "code"},
	)
)

// RecordBackendCall records the duration of a backend call
func RecordBackendCall(operation, status string, duration float64) {
	BackendCallDuration.WithLabelValues(operation, status).Observe(duration)
}

// RecordAction counts a dashboard action outcome
func RecordAction(action, outcome string) {
	DashboardActions.WithLabelValues(action, outcome).Inc()
}

// RecordHTTPRequest records the duration of an HTTP request
func RecordHTTPRequest(method, route, code string, duration float64) {
	HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration)
}
