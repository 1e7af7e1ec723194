package health

import (
	"context"

	"github.com/heptiolabs/healthcheck" // Healthchecks framework.
	"go.uber.org/zap"                   // Logging.

	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog" // Logger from context.
)

// CheckReadyStartup checks that the gateway detected the Elasticsearch
// version and installed the index template when it started.
func CheckReadyStartup(ctx context.Context, g StartupReporter) healthcheck.Check {
	return func() error {
		logger := ctxlog.L(ctx).Named("CheckReadyStartup")
		s := g.Startup()
		if err := s.Err(); err != nil {
			logger.Info("gateway startup degraded", zap.Error(s.Reason))
			return err
		}
		logger.Debug("gateway startup ready")
		return nil
	}
}
