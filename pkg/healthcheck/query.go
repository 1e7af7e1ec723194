// Package healthcheck queries health-check analytics stored in Elasticsearch:
// availability and response-time trends over time, broken down by field.
package healthcheck

import (
	"strings"
	"time"

	"github.com/pkg/errors" // Wrap errors with stacktrace.
)

// AggregationType is the statistical operation of an Aggregation.
type AggregationType string

// Aggregation types.
const (
	// AggregationField computes the percentage of successful documents per term.
	AggregationField AggregationType = "FIELD"
	AggregationAvg   AggregationType = "AVG"
	AggregationMin   AggregationType = "MIN"
	AggregationMax   AggregationType = "MAX"
)

// ParseAggregationType parses s case-insensitively.
func ParseAggregationType(s string) (AggregationType, error) {
	t := AggregationType(strings.ToUpper(s))
	switch t {
	case AggregationField, AggregationAvg, AggregationMin, AggregationMax:
		return t, nil
	}
	return "", errors.Errorf("unknown aggregation type %q", s)
}

// ParseAggregation parses an aggregation written as "type:field",
// e.g. "field:status" or "avg:response-time".
func ParseAggregation(s string) (Aggregation, error) {
	typ, field, ok := strings.Cut(s, ":")
	if !ok || field == "" {
		return Aggregation{}, errors.Errorf("invalid aggregation %q, expected type:field", s)
	}
	t, err := ParseAggregationType(typ)
	if err != nil {
		return Aggregation{}, err
	}
	return Aggregation{Type: t, Field: field}, nil
}

// Aggregation is one requested sub-aggregation of a date histogram.
type Aggregation struct {
	Type  AggregationType `json:"type"`
	Field string          `json:"field"`
}

// Key returns the name of the aggregation in the search request and response,
// e.g. "by_status" or "avg_response-time".
func (a Aggregation) Key() string {
	if a.Type == AggregationField {
		return "by_" + a.Field
	}
	return strings.ToLower(string(a.Type)) + "_" + a.Field
}

// Kind returns the Elasticsearch aggregation used to compute a.
func (a Aggregation) Kind() string {
	if a.Type == AggregationField {
		return "terms"
	}
	return strings.ToLower(string(a.Type))
}

// Root restricts a query to documents where Field equals ID, e.g. one API.
type Root struct {
	Field string `json:"field"`
	ID    string `json:"id"`
}

// DefaultInterval is the date histogram interval used when a query has none.
const DefaultInterval = time.Hour

// DateHistogramQuery requests a date histogram of health-check documents
// with the given aggregations computed for every date bucket.
type DateHistogramQuery struct {
	Root         *Root         `json:"root,omitempty"`
	Interval     time.Duration `json:"interval"`
	Aggregations []Aggregation `json:"aggregations"`
}

// interval returns the histogram interval, applying DefaultInterval.
func (q *DateHistogramQuery) interval() time.Duration {
	if q.Interval < time.Millisecond {
		return DefaultInterval
	}
	return q.Interval
}

// uniqueAggregations returns q's aggregations without duplicate keys,
// in order of first appearance.
func (q *DateHistogramQuery) uniqueAggregations() []Aggregation {
	seen := make(map[string]bool, len(q.Aggregations))
	out := make([]Aggregation, 0, len(q.Aggregations))
	for _, a := range q.Aggregations {
		if k := a.Key(); !seen[k] {
			seen[k] = true
			out = append(out, a)
		}
	}
	return out
}
