// Package metrics collects Prometheus counters for storage operations.
// Exposition is left to the embedding application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records storage-layer metrics. Backends call it on every
// operation; a nil *Collector is safe to call and records nothing, so tests
// and one-off tools do not have to wire a registry.
type Collector struct {
	storeOps    *prometheus.CounterVec
	storeErrors *prometheus.CounterVec
	storeOpTime *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salespilots_store_operations_total",
			Help: "Total storage operations by entity, operation and backend.",
		}, []string{"entity", "op", "backend"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salespilots_store_errors_total",
			Help: "Total failed storage operations by entity, operation and backend.",
		}, []string{"entity", "op", "backend"}),
		storeOpTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "salespilots_store_operation_seconds",
			Help:    "Storage operation latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"entity", "op", "backend"}),
	}
	reg.MustRegister(c.storeOps, c.storeErrors, c.storeOpTime)
	return c
}

// RecordOp counts one storage operation and its outcome.
func (c *Collector) RecordOp(entity, op, backend string, start time.Time, err error) {
	if c == nil {
		return
	}
	c.storeOps.WithLabelValues(entity, op, backend).Inc()
	c.storeOpTime.WithLabelValues(entity, op, backend).Observe(time.Since(start).Seconds())
	if err != nil {
		c.storeErrors.WithLabelValues(entity, op, backend).Inc()
	}
}
