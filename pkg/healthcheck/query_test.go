package healthcheck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert" // Test assertions.
)

func TestAggregation_Key(t *testing.T) {
	tests := []struct {
		agg      Aggregation
		wantKey  string
		wantKind string
	}{
		{agg: Aggregation{Type: AggregationField, Field: "status"}, wantKey: "by_status", wantKind: "terms"},
		{agg: Aggregation{Type: AggregationAvg, Field: "response-time"}, wantKey: "avg_response-time", wantKind: "avg"},
		{agg: Aggregation{Type: AggregationMin, Field: "response-time"}, wantKey: "min_response-time", wantKind: "min"},
		{agg: Aggregation{Type: AggregationMax, Field: "response-time"}, wantKey: "max_response-time", wantKind: "max"},
	}
	for _, tc := range tests {
		t.Run(tc.wantKey, func(t *testing.T) {
			assert.Equal(t, tc.wantKey, tc.agg.Key())
			assert.Equal(t, tc.wantKind, tc.agg.Kind())
		})
	}
}

func TestParseAggregationType(t *testing.T) {
	for in, want := range map[string]AggregationType{
		"field": AggregationField,
		"AVG":   AggregationAvg,
		"Min":   AggregationMin,
		"max":   AggregationMax,
	} {
		got, err := ParseAggregationType(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseAggregationType("sum")
	assert.Error(t, err)
}

func TestDateHistogramQuery_interval(t *testing.T) {
	assert.Equal(t, DefaultInterval, (&DateHistogramQuery{}).interval())
	assert.Equal(t, DefaultInterval, (&DateHistogramQuery{Interval: time.Microsecond}).interval())
	assert.Equal(t, 5*time.Minute, (&DateHistogramQuery{Interval: 5 * time.Minute}).interval())
}

func TestDateHistogramQuery_uniqueAggregations(t *testing.T) {
	a := Aggregation{Type: AggregationAvg, Field: "x"}
	b := Aggregation{Type: AggregationField, Field: "x"}
	q := &DateHistogramQuery{Aggregations: []Aggregation{a, b, a}}
	assert.Equal(t, []Aggregation{a, b}, q.uniqueAggregations())
}

func TestParseAggregation(t *testing.T) {
	a, err := ParseAggregation("avg:response-time")
	assert.NoError(t, err)
	assert.Equal(t, Aggregation{Type: AggregationAvg, Field: "response-time"}, a)

	a, err = ParseAggregation("FIELD:a:b")
	assert.NoError(t, err)
	assert.Equal(t, Aggregation{Type: AggregationField, Field: "a:b"}, a)

	for _, s := range []string{"", "avg", "avg:", "sum:x", ":x"} {
		_, err := ParseAggregation(s)
		assert.Error(t, err, s)
	}
}
