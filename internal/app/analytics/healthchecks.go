package analytics

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/heptiolabs/healthcheck"              // Healthchecks framework.
	"github.com/pkg/errors"                          // Wrap errors with stacktrace.
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.

	"github.com/mintel/elasticsearch-analytics/internal/pkg/cmd" // Common command line app tools.
	"github.com/mintel/elasticsearch-analytics/pkg/es/health"    // Elasticsearch gateway healthchecks.
)

// Healthchecks serves the liveness and readiness of the App.
type Healthchecks struct {
	Handler healthcheck.Handler

	gatewayStarted atomic.Bool
}

// NewHealthchecks returns a new Healthchecks.
func NewHealthchecks(r prometheus.Registerer) *Healthchecks {
	h := &Healthchecks{
		Handler: cmd.NewHealthchecksHandler(r, Name),
	}
	h.Handler.AddReadinessCheck("elasticsearch-gateway", func() error {
		if !h.gatewayStarted.Load() {
			return errors.New("elasticsearch gateway not yet started")
		}
		return nil
	})
	return h
}

// Gateway is the part of *es.Gateway checked for readiness.
type Gateway interface {
	health.StartupReporter
	health.ClusterHealther
}

// AddGatewayChecks marks the gateway as started and adds readiness
// checks of its startup and of the cluster health.
func (h *Healthchecks) AddGatewayChecks(ctx context.Context, g Gateway, timeout time.Duration) {
	h.Handler.AddReadinessCheck("elasticsearch-startup", health.CheckReadyStartup(ctx, g))
	h.Handler.AddReadinessCheck(
		"elasticsearch-cluster-health",
		healthcheck.Timeout(health.CheckReadyClusterHealth(ctx, g), timeout),
	)
	h.gatewayStarted.Store(true)
}
