package metrics

import (
	"net/http"
	"strconv"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.
)

// ElasticsearchStatusCode returns the HTTP status code of an Elasticsearch
// response or error as a LabelStatusCode label value.
// v can be an *http.Response, *elastic.Response, *elastic.Error, elastic.Error,
// or an int status code. Returns "" for other types and for a zero status,
// which is what a transport error has.
func ElasticsearchStatusCode(v interface{}) string {
	var code int
	switch e := v.(type) {
	case *http.Response:
		code = e.StatusCode
	case *elastic.Response:
		code = e.StatusCode
	case *elastic.Error:
		code = e.Status
	case elastic.Error:
		code = e.Status
	case int:
		code = e
	}
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code)
}
