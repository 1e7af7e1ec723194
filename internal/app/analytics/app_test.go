package analytics

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"                   // Prometheus metrics.
	promtest "github.com/prometheus/client_golang/prometheus/testutil" // Prometheus metrics testing.
	"github.com/stretchr/testify/assert"                               // Test assertions.
	"github.com/stretchr/testify/require"                              // Test assertions.
	"github.com/tidwall/gjson"                                         // Dynamic JSON parsing.
	gock "gopkg.in/h2non/gock.v1"                                      // HTTP request mocking.

	"github.com/mintel/elasticsearch-analytics/internal/pkg/testutil" // Testing utilities.
	"github.com/mintel/elasticsearch-analytics/pkg/es"                // Elasticsearch gateway.
	"github.com/mintel/elasticsearch-analytics/pkg/healthcheck"       // Health-check analytics.
)

const testURL = "http://127.0.0.1:9200"

func newTestApp(t *testing.T, args ...string) *App {
	app, err := NewApp(prometheus.NewRegistry())
	require.NoError(t, err)
	_, err = app.Parse(args)
	require.NoError(t, err)
	return app
}

func TestNewApp_serveIsDefault(t *testing.T) {
	app, err := NewApp(prometheus.NewRegistry())
	require.NoError(t, err)
	selected, err := app.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, serveCommand, selected)
	assert.Equal(t, uint16(defaultPort), app.flags.Port)
	assert.Equal(t, defaultShutdownTimeout, app.flags.ShutdownTimeout)
	assert.Equal(t, es.DefaultURL, app.flags.URL)
}

func TestNewApp_query(t *testing.T) {
	app := newTestApp(t,
		"--elasticsearch.url", testURL,
		"--shutdown-timeout", "2s",
		"query",
		"--api", "my-api",
		"-a", "field:status",
		"--aggregation", "max:response-time",
		"--interval", "15m",
	)
	assert.Equal(t, queryCommand, app.command)
	assert.Equal(t, testURL, app.flags.URL)
	assert.Equal(t, 2*time.Second, app.flags.ShutdownTimeout)
	assert.Equal(t, "my-api", app.flags.Query.API)
	assert.Equal(t, []string{"field:status", "max:response-time"}, app.flags.Query.Aggregations)
	assert.Equal(t, 15*time.Minute, app.flags.Query.Interval)
}

func TestNewApp_queryRequiresAggregation(t *testing.T) {
	app, err := NewApp(prometheus.NewRegistry())
	require.NoError(t, err)
	_, err = app.Parse([]string{"query"})
	assert.Error(t, err)
}

func TestBuildQuery(t *testing.T) {
	q, err := buildQuery("", []string{"AVG:response-time"}, 0)
	require.NoError(t, err)
	assert.Nil(t, q.Root)
	assert.Equal(t, []healthcheck.Aggregation{{Type: healthcheck.AggregationAvg, Field: "response-time"}}, q.Aggregations)

	q, err = buildQuery("my-api", []string{"field:status"}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, &healthcheck.Root{Field: rootField, ID: "my-api"}, q.Root)
	assert.Equal(t, time.Minute, q.Interval)

	_, err = buildQuery("", []string{"field:status"}, 59*time.Second)
	assert.Error(t, err)
	_, err = buildQuery("", []string{"status"}, 0)
	assert.Error(t, err)
	_, err = buildQuery("", []string{"sum:status"}, 0)
	assert.Error(t, err)
}

func TestApp_query(t *testing.T) {
	ctx, _, teardown := testutil.ClientTestSetup(t)
	defer teardown()

	gock.New(testURL).
		Get("/$").
		Reply(http.StatusOK).
		JSON(map[string]interface{}{"version": map[string]interface{}{"number": "7.10.2"}})
	gock.New(testURL).
		Put("/_template/gravitee").
		Reply(http.StatusOK).
		JSON(map[string]interface{}{"acknowledged": true})
	gock.New(testURL).
		Post("/gravitee-[0-9.]+(,gravitee-[0-9.]+)*/_search$").
		MatchParam("ignore_unavailable", "true").
		Reply(http.StatusOK).
		BodyString(testutil.LoadTestData("search_7x.json"))

	app := newTestApp(t,
		"--elasticsearch.url", testURL,
		"query",
		"--api", "my-api",
		"-a", "field:status",
		"-a", "max:response-time",
	)

	var buf bytes.Buffer
	require.NoError(t, app.query(ctx, &buf))
	assert.True(t, gock.IsDone())

	out := gjson.Parse(buf.String())
	assert.Equal(t, int64(1585652400000), out.Get("timestamps.0").Int())
	assert.Equal(t, "by_status", out.Get("values.0.name").String())
	assert.Equal(t, 75.0, out.Get("values.0.data.by_status.0.value").Float())
	assert.Equal(t, "response-time", out.Get("values.1.field").String())
	assert.Equal(t, 230.0, out.Get("values.1.data.max_response-time.0.value").Float())
	assert.Equal(t, 1.0, promtest.ToFloat64(app.inst.Queries.WithLabelValues("success")))
}

func TestApp_query_searchFails(t *testing.T) {
	ctx, _, teardown := testutil.ClientTestSetup(t)
	defer teardown()

	gock.New(testURL).
		Get("/$").
		Reply(http.StatusOK).
		JSON(map[string]interface{}{"version": map[string]interface{}{"number": "7.10.2"}})
	gock.New(testURL).
		Put("/_template/gravitee").
		Reply(http.StatusOK).
		JSON(map[string]interface{}{"acknowledged": true})
	gock.New(testURL).
		Post("/_search$").
		Reply(http.StatusInternalServerError).
		JSON(map[string]interface{}{"status": 500})

	app := newTestApp(t, "--elasticsearch.url", testURL, "query", "-a", "avg:response-time")

	var buf bytes.Buffer
	err := app.query(ctx, &buf)
	var ae *healthcheck.AnalyticsError
	require.ErrorAs(t, err, &ae)
	assert.Empty(t, buf.String())
	assert.Equal(t, 1.0, promtest.ToFloat64(app.inst.Queries.WithLabelValues("error")))
}

func TestApp_query_invalidAggregation(t *testing.T) {
	app := newTestApp(t, "query", "-a", "median:response-time")
	err := app.query(context.Background(), &bytes.Buffer{})
	assert.Error(t, err)
}
