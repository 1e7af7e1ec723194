// Package health implements healthchecks (using https://github.com/heptiolabs/healthcheck)
// to check the readiness of the Elasticsearch gateway.
package health

import (
	"context"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.

	"github.com/mintel/elasticsearch-analytics/pkg/es" // Elasticsearch gateway.
)

// StartupReporter reports the result of a gateway's bootstrap.
type StartupReporter interface {
	Startup() es.Startup
}

// ClusterHealther gets the health of an Elasticsearch cluster.
type ClusterHealther interface {
	ClusterHealth(ctx context.Context) (*elastic.ClusterHealthResponse, error)
}

var (
	_ StartupReporter = (*es.Gateway)(nil)
	_ ClusterHealther = (*es.Gateway)(nil)
)
