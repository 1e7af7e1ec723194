package es

import (
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.

	"github.com/mintel/elasticsearch-analytics/internal/pkg/metrics" // Prometheus metrics helpers.
)

const subsystem = "elasticsearch"

// instrumentation holds the Prometheus metrics of a Gateway.
type instrumentation struct {
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec
	BulkFailures    prometheus.Counter
	MajorVersion    prometheus.Gauge
	StartupDegraded prometheus.Gauge
}

func newInstrumentation(r prometheus.Registerer) (*instrumentation, error) {
	i := &instrumentation{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metrics.Namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of Elasticsearch gateway operations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{metrics.LabelOperation, metrics.LabelStatus},
		),
		RequestErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metrics.Namespace,
				Subsystem: subsystem,
				Name:      "request_errors_total",
				Help:      "Failed Elasticsearch gateway operations by HTTP status code. Code is empty for transport errors.",
			},
			[]string{metrics.LabelOperation, metrics.LabelStatusCode},
		),
		BulkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: subsystem,
			Name:      "bulk_failures_total",
			Help:      "Number of fire-and-forget bulk requests that failed.",
		}),
		MajorVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: subsystem,
			Name:      "major_version",
			Help:      "Major version of Elasticsearch detected at startup.",
		}),
		StartupDegraded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: subsystem,
			Name:      "startup_degraded",
			Help:      "1 if the gateway started without detecting the version or installing the index template.",
		}),
	}
	c, err := metrics.RegisterOrExisting(r, i)
	if err != nil {
		return nil, err
	}
	return c.(*instrumentation), nil
}

// Describe implements the prometheus.Collector interface.
func (i *instrumentation) Describe(c chan<- *prometheus.Desc) {
	i.RequestDuration.Describe(c)
	i.RequestErrors.Describe(c)
	i.BulkFailures.Describe(c)
	i.MajorVersion.Describe(c)
	i.StartupDegraded.Describe(c)
}

// Collect implements the prometheus.Collector interface.
func (i *instrumentation) Collect(c chan<- prometheus.Metric) {
	i.RequestDuration.Collect(c)
	i.RequestErrors.Collect(c)
	i.BulkFailures.Collect(c)
	i.MajorVersion.Collect(c)
	i.StartupDegraded.Collect(c)
}
