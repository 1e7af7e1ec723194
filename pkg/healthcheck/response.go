package healthcheck

// Data is one point of a time series.
type Data struct {
	Key   int64   `json:"key"` // Epoch millis.
	Value float64 `json:"value"`
}

// Bucket holds the time series of one requested aggregation.
type Bucket struct {
	Name  string            `json:"name"`  // Aggregation key, e.g. "avg_response-time".
	Field string            `json:"field"` // e.g. "response-time".
	Data  map[string][]Data `json:"data"`  // Single entry keyed by Name.
}

// Series returns the points of the bucket.
func (b *Bucket) Series() []Data {
	if b == nil {
		return nil
	}
	return b.Data[b.Name]
}

// DateHistogramResponse is a time series per requested aggregation.
// Values[i] holds the series of the query's Aggregations[i], or nil
// if there was no data for it.
type DateHistogramResponse struct {
	Timestamps []int64   `json:"timestamps"`
	Values     []*Bucket `json:"values"`
}
