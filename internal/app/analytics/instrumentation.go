package analytics

import (
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.

	"github.com/mintel/elasticsearch-analytics/internal/pkg/metrics" // Prometheus metrics helpers.
)

// Label names.
const (
	labelHandler = "handler"
)

// Instrumentation holds Prometheus metrics specific to the App.
type Instrumentation struct {
	// Latency of API requests by handler, method and status code.
	APIRequestDuration *prometheus.HistogramVec

	// Date histogram queries executed, by status.
	Queries *prometheus.CounterVec

	// Health-check events dispatched for indexing.
	EventsRecorded prometheus.Counter
}

// NewInstrumentation returns a new Instrumentation.
func NewInstrumentation(namespace string) *Instrumentation {
	return &Instrumentation{
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Latency of API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{labelHandler, metrics.LabelMethod, metrics.LabelStatusCode}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Count of date histogram queries executed.",
		}, []string{metrics.LabelStatus}),
		EventsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_recorded_total",
			Help:      "Count of health-check events dispatched for indexing.",
		}),
	}
}

// Describe implements the prometheus.Collector interface.
func (m *Instrumentation) Describe(c chan<- *prometheus.Desc) {
	m.APIRequestDuration.Describe(c)
	m.Queries.Describe(c)
	m.EventsRecorded.Describe(c)
}

// Collect implements the prometheus.Collector interface.
func (m *Instrumentation) Collect(c chan<- prometheus.Metric) {
	m.APIRequestDuration.Collect(c)
	m.Queries.Collect(c)
	m.EventsRecorded.Collect(c)
}
