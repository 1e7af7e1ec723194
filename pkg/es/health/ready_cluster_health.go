package health

import (
	"context"

	"github.com/heptiolabs/healthcheck" // Healthchecks framework.
	"github.com/pkg/errors"             // Wrap errors with stacktrace.
	"go.uber.org/zap"                   // Logging.

	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog" // Logger from context.
)

// ErrClusterRed is returned by CheckReadyClusterHealth when the cluster status is red.
var ErrClusterRed = errors.New("cluster status is red")

// CheckReadyClusterHealth checks that Elasticsearch is reachable and
// its cluster status isn't red. Yellow clusters can still serve searches.
func CheckReadyClusterHealth(ctx context.Context, g ClusterHealther) healthcheck.Check {
	return func() error {
		logger := ctxlog.L(ctx).Named("CheckReadyClusterHealth")
		resp, err := g.ClusterHealth(ctx)
		if err != nil {
			logger.Info("error getting cluster health", zap.Error(err))
			return err
		}
		logger = logger.With(
			zap.String("cluster_name", resp.ClusterName),
			zap.String("cluster_status", resp.Status),
		)
		if resp.Status == "red" {
			logger.Info(ErrClusterRed.Error())
			return ErrClusterRed
		}
		logger.Debug("cluster is healthy")
		return nil
	}
}
