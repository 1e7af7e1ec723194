// Package metrics hold constants and utilities for instrumenting
// elasticsearch-analytics with Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
)

// Namespace is the namespace to be used for Prometheus
// metrics throughout elasticsearch-analytics.
const Namespace = "esanalytics"

// BuildFQName joins Namespace, subsystem and name into a fully-qualified
// metric name.
func BuildFQName(subsystem, name string) string {
	return prometheus.BuildFQName(Namespace, subsystem, name)
}

// RegisterOrExisting registers c with r. If an equal collector was already
// registered, the existing one is returned instead so that components
// created more than once against the same Registerer share their metrics.
// A nil Registerer is a no-op.
func RegisterOrExisting(r prometheus.Registerer, c prometheus.Collector) (prometheus.Collector, error) {
	if r == nil {
		return c, nil
	}
	if err := r.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector, nil
		}
		return nil, err
	}
	return c, nil
}
