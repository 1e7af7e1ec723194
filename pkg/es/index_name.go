package es

import (
	"strings"
	"time"

	estime "github.com/mintel/elasticsearch-analytics/pkg/time" // Calendar helpers.
)

// IndexDateLayout is the date suffix layout of daily indices.
const IndexDateLayout = "2006.01.02"

// DailyIndices returns the comma-separated names of the daily indices
// ("prefix-yyyy.MM.dd") covering [from, to]. Days are computed in UTC.
func DailyIndices(prefix string, from, to time.Time) string {
	days := estime.Days(from.UTC(), to.UTC())
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = DailyIndex(prefix, d)
	}
	return strings.Join(names, ",")
}

// DailyIndex returns the name of the daily index holding documents at t.
func DailyIndex(prefix string, t time.Time) string {
	return prefix + "-" + t.UTC().Format(IndexDateLayout)
}
