package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"service-lastmile/internal/http/middleware"
	"service-lastmile/internal/metrics"
)

// Metrics groups every collector the service updates.
type Metrics struct {
	GatewayRetries     prometheus.Counter
	EventsPublished    *prometheus.CounterVec
	BestEffortFailures *prometheus.CounterVec
	HTTP               middleware.HTTPMetrics
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		GatewayRetries:     metrics.NewGatewayRetriesTotal(),
		EventsPublished:    metrics.NewEventsPublishedTotal(),
		BestEffortFailures: metrics.NewBestEffortFailuresTotal(),
		HTTP: middleware.HTTPMetrics{
			Requests: metrics.NewHTTPRequestsTotal(),
			Duration: metrics.NewHTTPRequestDuration(),
		},
	}
	for _, c := range []prometheus.Collector{
		m.GatewayRetries, m.EventsPublished, m.BestEffortFailures, m.HTTP.Requests, m.HTTP.Duration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}
