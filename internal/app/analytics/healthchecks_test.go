package analytics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	elastic "github.com/olivere/elastic/v7"          // Elasticsearch client.
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	"github.com/stretchr/testify/assert"             // Test assertions.

	"github.com/mintel/elasticsearch-analytics/internal/pkg/testutil" // Testing utilities.
	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog"            // Logger from context.
	"github.com/mintel/elasticsearch-analytics/pkg/es"                // Elasticsearch gateway.
)

type fakeGateway struct {
	startup es.Startup
	status  string
	err     error
}

func (f *fakeGateway) Startup() es.Startup { return f.startup }

func (f *fakeGateway) ClusterHealth(context.Context) (*elastic.ClusterHealthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &elastic.ClusterHealthResponse{ClusterName: "test", Status: f.status}, nil
}

func ready(h http.Handler) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	return rec.Code
}

func live(h http.Handler) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	return rec.Code
}

func TestHealthchecks(t *testing.T) {
	logger, teardown := testutil.TestLogger(t)
	defer teardown()
	ctx := ctxlog.WithLogger(context.Background(), logger)

	h := NewHealthchecks(prometheus.NewRegistry())
	assert.Equal(t, http.StatusOK, live(h.Handler))
	assert.Equal(t, http.StatusServiceUnavailable, ready(h.Handler), "not ready before the gateway starts")

	g := &fakeGateway{startup: es.Startup{State: es.StartupReady}, status: "yellow"}
	h.AddGatewayChecks(ctx, g, time.Second)
	assert.Equal(t, http.StatusOK, ready(h.Handler))

	g.status = "red"
	assert.Equal(t, http.StatusServiceUnavailable, ready(h.Handler))

	g.status = "green"
	g.startup = es.Startup{State: es.StartupDegraded, Reason: errors.New("template rejected")}
	assert.Equal(t, http.StatusServiceUnavailable, ready(h.Handler))
	assert.Equal(t, http.StatusOK, live(h.Handler), "degraded gateway doesn't fail liveness")
}
