package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gitbridge"

// Collector records outbound backend calls on a private registry.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics:
//   - gitbridge_backend_requests_total (counter)
//   - gitbridge_backend_request_duration_seconds (histogram)
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of HTTP calls issued to Git hosting backends",
		},
		[]string{"backend", "method", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of HTTP calls issued to Git hosting backends",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"backend", "method"},
	)

	for _, c := range []prometheus.Collector{requests, duration} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return &Collector{registry: registry, requests: requests, duration: duration}, nil
}

// ObserveRequest records one call. A zero status means no response was received.
func (c *Collector) ObserveRequest(backend, method string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.requests.WithLabelValues(backend, method, label).Inc()
	c.duration.WithLabelValues(backend, method).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	//nolint:exhaustruct // default handler options
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
