package analytics

import (
	"time"

	"github.com/pkg/errors" // Wrap errors with stacktrace.

	"github.com/mintel/elasticsearch-analytics/pkg/healthcheck" // Health-check analytics.
)

// rootField is the document field matched by the api filter.
const rootField = "api"

// minInterval is the smallest date histogram interval accepted.
const minInterval = time.Minute

// buildQuery returns a DateHistogramQuery over aggregations written as
// "type:field", optionally restricted to one API.
// A zero interval selects healthcheck.DefaultInterval.
func buildQuery(api string, aggregations []string, interval time.Duration) (*healthcheck.DateHistogramQuery, error) {
	if interval != 0 && interval < minInterval {
		return nil, errors.Errorf("interval %s is shorter than the minimum of %s", interval, minInterval)
	}
	q := &healthcheck.DateHistogramQuery{
		Interval:     interval,
		Aggregations: make([]healthcheck.Aggregation, 0, len(aggregations)),
	}
	if api != "" {
		q.Root = &healthcheck.Root{Field: rootField, ID: api}
	}
	for _, s := range aggregations {
		a, err := healthcheck.ParseAggregation(s)
		if err != nil {
			return nil, err
		}
		q.Aggregations = append(q.Aggregations, a)
	}
	return q, nil
}
