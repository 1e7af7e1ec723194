package cmd

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.

	"github.com/mintel/elasticsearch-analytics/pkg/es"       // Elasticsearch gateway.
	"github.com/mintel/elasticsearch-analytics/pkg/template" // Request body templates.
)

// ElasticsearchFlags represents a base set of flags for
// connecting to Elasticsearch.
type ElasticsearchFlags struct {
	URL      string
	Username string
	Password string

	// Prefix of the daily health-check indices.
	IndexName string

	// Index template settings.
	Shards   int
	Replicas int

	// Per-request timeout.
	Timeout time.Duration
}

// NewElasticsearchFlags returns a new ElasticsearchFlags.
func NewElasticsearchFlags(app Flagger) *ElasticsearchFlags {
	var f ElasticsearchFlags

	app.Flag("elasticsearch.url", "URL of Elasticsearch.").
		Short('e').
		Envar("ELASTICSEARCH_URL").
		Default(es.DefaultURL).
		StringVar(&f.URL)

	app.Flag("elasticsearch.username", "Username for Elasticsearch Basic auth.").
		Envar("ELASTICSEARCH_USERNAME").
		StringVar(&f.Username)

	app.Flag("elasticsearch.password", "Password for Elasticsearch Basic auth.").
		Envar("ELASTICSEARCH_PASSWORD").
		StringVar(&f.Password)

	app.Flag("elasticsearch.index-name", "Prefix of the daily health-check indices.").
		Envar("ELASTICSEARCH_INDEX_NAME").
		Default(es.DefaultIndexName).
		StringVar(&f.IndexName)

	app.Flag("elasticsearch.shards", "Number of shards of the health-check indices.").
		Default(strconv.Itoa(es.DefaultNumberOfShards)).
		IntVar(&f.Shards)

	app.Flag("elasticsearch.replicas", "Number of replicas of the health-check indices.").
		Default(strconv.Itoa(es.DefaultNumberOfReplicas)).
		IntVar(&f.Replicas)

	app.Flag("elasticsearch.timeout", "Timeout of requests to Elasticsearch.").
		Envar("ELASTICSEARCH_TIMEOUT").
		Default(es.DefaultTimeout.String()).
		DurationVar(&f.Timeout)

	return &f
}

// Config returns an es.Config built from the flag values.
func (f *ElasticsearchFlags) Config(r prometheus.Registerer, t template.Renderer) es.Config {
	return es.Config{
		URL:              f.URL,
		Username:         f.Username,
		Password:         f.Password,
		IndexName:        f.IndexName,
		NumberOfShards:   f.Shards,
		NumberOfReplicas: f.Replicas,
		Timeout:          f.Timeout,
		Registerer:       r,
		Templates:        t,
	}
}
