package es

import (
	"context"
	"encoding/json"
	"net/http"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.
	"go.uber.org/zap"                       // Logging.

	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog" // Logger from context.
)

// ClusterHealth returns the health of the Elasticsearch cluster.
func (g *Gateway) ClusterHealth(ctx context.Context) (*elastic.ClusterHealthResponse, error) {
	logger := ctxlog.L(ctx).Named("Gateway.ClusterHealth")

	res, err := g.perform(ctx, opClusterHealth, elastic.PerformRequestOptions{
		Method: http.MethodGet,
		Path:   "/_cluster/health",
	})
	if err != nil {
		logger.Error("error getting cluster health", zap.Error(err))
		return nil, err
	}

	health := new(elastic.ClusterHealthResponse)
	if err := json.Unmarshal(res.Body, health); err != nil {
		return nil, &TechnicalError{Op: opClusterHealth, Err: err}
	}
	logger.Debug("got cluster health",
		zap.String("cluster_name", health.ClusterName),
		zap.String("cluster_status", health.Status),
	)
	return health, nil
}
