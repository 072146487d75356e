package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics records request metadata for calls to the restaurant API.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream client metrics on the provided
// registerer. A nil registerer yields a no-op recorder.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of restaurant API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Restaurant API requests by operation and status code.",
	}, []string{"operation", "status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_failures_total",
		Help: "Restaurant API requests that failed before a response arrived.",
	}, []string{"operation"})
	reg.MustRegister(duration, requests, failures)
	return &UpstreamMetrics{
		duration: duration,
		requests: requests,
		failures: failures,
	}
}

// ObserveRequest records a completed request with its HTTP status.
func (u *UpstreamMetrics) ObserveRequest(operation string, status int, duration time.Duration) {
	if u == nil || u.requests == nil {
		return
	}
	op := normalizeLabel(operation)
	u.requests.WithLabelValues(op, strconv.Itoa(status)).Inc()
	u.duration.WithLabelValues(op).Observe(duration.Seconds())
}

// IncFailure records a request that never produced an HTTP response.
func (u *UpstreamMetrics) IncFailure(operation string) {
	if u == nil || u.failures == nil {
		return
	}
	u.failures.WithLabelValues(normalizeLabel(operation)).Inc()
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
