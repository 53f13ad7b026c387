package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by the driver gateway
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by the driver gateway",
	})
}

// NewEventsPublishedTotal returns a counter of outbound delivery events by type and result
func NewEventsPublishedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Total number of delivery events handed to the broker",
	}, []string{"event_type", "result"})
}

// NewBestEffortFailuresTotal returns a counter of swallowed side-effect failures by operation
func NewBestEffortFailuresTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "best_effort_failures_total",
		Help: "Total number of failed best-effort calls that did not fail the operation",
	}, []string{"op"})
}

// NewHTTPRequestsTotal returns a counter of served HTTP requests by method, route pattern and status
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
}

// NewHTTPRequestDuration returns a histogram of HTTP request durations by method, route pattern and status
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
}
