package healthcheck

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"              // Document IDs.
	"github.com/stretchr/testify/assert"  // Test assertions.
	"github.com/stretchr/testify/require" // Test assertions.
	"github.com/tidwall/gjson"            // Dynamic JSON parsing.
)

type fakeBulkIndexer struct {
	major  int
	bodies []string
}

func (f *fakeBulkIndexer) BulkIndex(_ context.Context, body string) {
	f.bodies = append(f.bodies, body)
}

func (f *fakeBulkIndexer) MajorVersion() int { return f.major }

func (f *fakeBulkIndexer) IndexName() string { return "gravitee" }

func TestEncodeBulk(t *testing.T) {
	events := []Event{
		{
			Timestamp:    time.Date(2020, time.January, 1, 23, 59, 0, 0, time.UTC),
			API:          "api-1",
			Endpoint:     "http://backend/<ping>",
			Gateway:      "gw-1",
			Available:    true,
			Success:      true,
			State:        200,
			ResponseTime: 42,
		},
		{
			Timestamp: time.Date(2020, time.January, 2, 0, 1, 0, 0, time.UTC),
			API:       "api-1",
			State:     503,
			Message:   "Service Unavailable",
		},
	}

	body, err := EncodeBulk(events, "gravitee", 7)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(body, "\n"))
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	require.Len(t, lines, 4)

	action := gjson.Parse(lines[0])
	assert.Equal(t, "gravitee-2020.01.01", action.Get("index._index").String())
	assert.False(t, action.Get("index._type").Exists())
	_, err = uuid.Parse(action.Get("index._id").String())
	assert.NoError(t, err)

	doc := gjson.Parse(lines[1])
	assert.Equal(t, "2020-01-01T23:59:00Z", doc.Get(`\@timestamp`).String())
	assert.Equal(t, "api-1", doc.Get("api").String())
	assert.Equal(t, "http://backend/<ping>", doc.Get("endpoint").String())
	assert.True(t, doc.Get("success").Bool())
	assert.Equal(t, int64(42), doc.Get("response-time").Int())
	assert.False(t, doc.Get("message").Exists())

	assert.Equal(t, "gravitee-2020.01.02", gjson.Get(lines[2], "index._index").String())
	assert.NotEqual(t, action.Get("index._id").String(), gjson.Get(lines[2], "index._id").String())
	assert.Equal(t, "Service Unavailable", gjson.Get(lines[3], "message").String())
}

func TestEncodeBulk_typed(t *testing.T) {
	body, err := EncodeBulk([]Event{{Timestamp: time.Unix(0, 0)}}, "gravitee", 5)
	require.NoError(t, err)
	assert.Equal(t, "health", gjson.Get(strings.Split(body, "\n")[0], "index._type").String())
}

func TestRecorder_Record(t *testing.T) {
	g := &fakeBulkIndexer{major: 6}
	r := NewRecorder(g)
	r.Now = func() time.Time { return time.Date(2020, time.May, 4, 10, 0, 0, 0, time.UTC) }

	require.NoError(t, r.Record(context.Background()))
	assert.Empty(t, g.bodies, "no events, no request")

	require.NoError(t, r.Record(context.Background(), Event{API: "a"}, Event{API: "b"}))
	require.Len(t, g.bodies, 1)
	lines := strings.Split(strings.TrimSuffix(g.bodies[0], "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "gravitee-2020.05.04", gjson.Get(lines[0], "index._index").String())
	assert.Equal(t, "health", gjson.Get(lines[0], "index._type").String())
	assert.Equal(t, "2020-05-04T10:00:00Z", gjson.Get(lines[1], `\@timestamp`).String())
	assert.Equal(t, "b", gjson.Get(lines[3], "api").String())
}
