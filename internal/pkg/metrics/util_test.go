package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetrics asserts that a prometheus.Gatherer has an expected
// number of metrics.
func assertMetrics(t *testing.T, r prometheus.Gatherer, expected int) {
	var count int
	metricFamilies, err := r.Gather()
	if !assert.NoError(t, err, "error while gathering metric families") {
		return
	}
	for _, mf := range metricFamilies {
		count += len(mf.Metric)
		t.Log(mf.GetName(), "-", mf.GetHelp())
		for _, m := range mf.Metric {
			t.Log(m.String())
		}
	}
	assert.Equal(t, expected, count, "wrong number of metrics")
}

// gather registers c with a fresh registry and returns all its metrics.
func gather(t *testing.T, c prometheus.Collector) []*dto.Metric {
	r := prometheus.NewRegistry()
	require.NoError(t, r.Register(c))
	mfs, err := r.Gather()
	require.NoError(t, err)
	var out []*dto.Metric
	for _, mf := range mfs {
		out = append(out, mf.Metric...)
	}
	return out
}
