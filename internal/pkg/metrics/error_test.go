package metrics

import (
	"net/http"
	"testing"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.
	"github.com/stretchr/testify/assert"    // Test assertions.
)

func TestElasticsearchStatusCode(t *testing.T) {
	assert.Equal(t, "404", ElasticsearchStatusCode(&http.Response{StatusCode: 404}))
	assert.Equal(t, "201", ElasticsearchStatusCode(&elastic.Response{StatusCode: 201}))
	assert.Equal(t, "500", ElasticsearchStatusCode(&elastic.Error{Status: 500}))
	assert.Equal(t, "503", ElasticsearchStatusCode(elastic.Error{Status: 503}))
	assert.Equal(t, "200", ElasticsearchStatusCode(200))
	assert.Equal(t, "", ElasticsearchStatusCode("nope"))
	assert.Equal(t, "", ElasticsearchStatusCode(nil))
	assert.Equal(t, "", ElasticsearchStatusCode(0), "transport errors have no status")
}
