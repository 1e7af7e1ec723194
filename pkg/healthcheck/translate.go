package healthcheck

import (
	"math"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.
	"github.com/tidwall/gjson"              // Dynamic JSON parsing.

	"github.com/mintel/elasticsearch-analytics/pkg/str" // String helpers.
)

// dateHistogramName is the name of the top-level date histogram aggregation.
const dateHistogramName = "by_date"

// aggregationKind classifies a sub-aggregation of a date bucket by its name prefix.
type aggregationKind int

const (
	ratioAggregation  aggregationKind = iota // by_<field>: terms keyed "1" for success.
	metricAggregation                        // avg_, min_, max_<field>: single value.
)

const ratioPrefix = "by_"

var prefixes = []string{ratioPrefix, "avg_", "min_", "max_"}

// classify returns the kind and field of a date bucket entry,
// or false if name isn't a recognized sub-aggregation.
func classify(name string) (kind aggregationKind, field string, ok bool) {
	prefix, field, ok := str.CutAnyPrefix(name, prefixes...)
	if !ok {
		return 0, "", false
	}
	if prefix == ratioPrefix {
		return ratioAggregation, field, true
	}
	return metricAggregation, field, true
}

// Translate converts the aggregations of a date histogram search into
// one time series per aggregation of q, in q's order. It never fails:
// missing or malformed parts of the response are skipped.
func Translate(res *elastic.SearchResult, q *DateHistogramQuery) *DateHistogramResponse {
	resp := &DateHistogramResponse{
		Timestamps: []int64{},
		Values:     []*Bucket{},
	}
	if res == nil || res.Aggregations == nil {
		return resp
	}

	buckets := make(map[string]*Bucket)
	if raw, ok := res.Aggregations[dateHistogramName]; ok {
		gjson.GetBytes(raw, "buckets").ForEach(func(_, dateBucket gjson.Result) bool {
			ts := dateBucket.Get("key").Int()
			resp.Timestamps = append(resp.Timestamps, ts)

			dateBucket.ForEach(func(name, node gjson.Result) bool {
				kind, field, ok := classify(name.Str)
				if !ok {
					return true
				}
				var (
					point Data
					found bool
				)
				switch kind {
				case ratioAggregation:
					point, found = ratioPoint(ts, node)
				case metricAggregation:
					point, found = metricPoint(ts, node)
				}
				if !found {
					return true
				}
				key := name.Str
				b, ok := buckets[key]
				if !ok {
					b = &Bucket{Name: key, Field: field, Data: map[string][]Data{key: nil}}
					buckets[key] = b
				}
				b.Data[key] = append(b.Data[key], point)
				return true
			})
			return true
		})
	}

	if q != nil {
		for _, a := range q.Aggregations {
			resp.Values = append(resp.Values, buckets[a.Key()])
		}
	}
	return resp
}

// ratioPoint returns the percentage of documents in the terms
// aggregation node whose key is 1. With no documents at all the
// percentage is 100: no evidence of failure counts as available.
func ratioPoint(ts int64, node gjson.Result) (Data, bool) {
	terms := node.Get("buckets")
	if !terms.IsArray() {
		return Data{}, false
	}
	var success, failure int64
	terms.ForEach(func(_, term gjson.Result) bool {
		count := term.Get("doc_count").Int()
		if isSuccessKey(term.Get("key")) {
			success += count
		} else {
			failure += count
		}
		return true
	})
	percent := 100.0
	if total := success + failure; total != 0 {
		percent = float64(success) * 100 / float64(total)
	}
	return Data{Key: ts, Value: percent}, true
}

// isSuccessKey returns true for the term key "1". Boolean and numeric
// terms aggregations return it as a number.
func isSuccessKey(key gjson.Result) bool {
	switch key.Type {
	case gjson.String:
		return key.Str == "1"
	case gjson.Number:
		return key.Num == 1
	default:
		return false
	}
}

// metricPoint returns the value of a single-value metric aggregation node,
// truncated to an integer. Nodes without a numeric value are skipped.
func metricPoint(ts int64, node gjson.Result) (Data, bool) {
	v := node.Get("value")
	if v.Type != gjson.Number {
		return Data{}, false
	}
	return Data{Key: ts, Value: math.Trunc(v.Num)}, true
}
