package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics counts admin mutations on batches and matrices.
type CatalogMetrics struct {
	operations *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCatalogMetrics(reg prometheus.Registerer, namespace string) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_admin_operations_total",
		Help:      "Admin catalog operations by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(operations)
	return &CatalogMetrics{operations: operations}
}

// RecordAdminOperation increments the counter for operation and outcome.
func (c *CatalogMetrics) RecordAdminOperation(operation, outcome string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
