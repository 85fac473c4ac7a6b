// Package metrics exposes prometheus instruments for index builds and queries.
// A nil *Collector is valid and records nothing.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns a private registry and the instruments of one process.
type Collector struct {
	registry   *prometheus.Registry
	inserts    prometheus.Counter
	queries    *prometheus.CounterVec
	candidates prometheus.Histogram
	latency    prometheus.Histogram
}

// New creates a collector whose metric names are prefixed with namespace.
func New(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		inserts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inserted_items_total",
			Help:      "Items inserted into the index.",
		}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Approximate queries by outcome.",
		}, []string{"result"}),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_candidates",
			Help:      "Distinct candidates examined per query.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Wall time of approximate queries.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}
	c.registry.MustRegister(c.inserts, c.queries, c.candidates, c.latency)
	return c
}

// Registry returns the registry holding the collector's instruments.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveInsert records n inserted items.
func (c *Collector) ObserveInsert(n int) {
	if c == nil {
		return
	}
	c.inserts.Add(float64(n))
}

// ObserveQuery records one query that examined the given number of candidates.
func (c *Collector) ObserveQuery(examined int, elapsed time.Duration, found bool) {
	if c == nil {
		return
	}
	result := "found"
	if !found {
		result = "not_found"
	}
	c.queries.WithLabelValues(result).Inc()
	c.candidates.Observe(float64(examined))
	c.latency.Observe(elapsed.Seconds())
}

// WriteTextfile writes the current metrics in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
