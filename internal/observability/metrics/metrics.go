package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	moduleDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_module_dispatches_total",
		Help: "Count of admin module dispatches by tag",
	}, []string{"tag"})

	backendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_backend_request_duration_seconds",
		Help:    "Duration of requests to the VisionHub backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "console_active_sessions",
		Help: "Number of live operator sessions",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveDispatch counts one module dispatch.
func ObserveDispatch(tag string) {
	moduleDispatches.WithLabelValues(tag).Inc()
}

// ObserveBackendRequest records one outbound request to the backend.
func ObserveBackendRequest(method, status string, duration time.Duration) {
	backendRequestDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}

// IncrementSessions increments the session gauge.
func IncrementSessions() {
	activeSessions.Inc()
}

// DecrementSessions decrements the session gauge.
func DecrementSessions() {
	activeSessions.Dec()
}
