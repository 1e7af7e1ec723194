package es

import (
	"net/url"
	"time"

	"github.com/pkg/errors"                          // Wrap errors with stacktrace.
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.

	"github.com/mintel/elasticsearch-analytics/pkg/str"      // String helpers.
	"github.com/mintel/elasticsearch-analytics/pkg/template" // Request body templates.
)

// Default configuration values.
const (
	DefaultURL              = "http://localhost:9200"
	DefaultIndexName        = "gravitee"
	DefaultNumberOfShards   = 5
	DefaultNumberOfReplicas = 1
	DefaultTimeout          = 10 * time.Second
)

// Config holds the settings of a Gateway.
// It must not be changed after being passed to Start.
type Config struct {
	// URL of the Elasticsearch endpoint. Only http and https are supported.
	URL string

	// Optional Basic auth credentials. Auth is enabled when Username is set.
	Username string
	Password string

	// Prefix of the daily health-check indices, and of the index template pattern.
	IndexName string

	// Index template settings.
	NumberOfShards   int
	NumberOfReplicas int

	// Timeout of every request sent to Elasticsearch. Required.
	Timeout time.Duration

	// Registerer for gateway metrics. Optional.
	Registerer prometheus.Registerer

	// Templates renders the index template bodies.
	Templates template.Renderer
}

// validate checks c and returns the parsed URL.
func (c *Config) validate() (*url.URL, error) {
	if c.URL == "" {
		return nil, errors.New("elasticsearch URL is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid elasticsearch URL")
	}
	if !str.In(u.Scheme, "http", "https") {
		return nil, errors.Errorf("unsupported elasticsearch URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.Errorf("elasticsearch URL %q has no host", c.URL)
	}
	if c.Timeout <= 0 {
		return nil, errors.New("elasticsearch timeout must be positive")
	}
	if c.IndexName == "" {
		return nil, errors.New("elasticsearch index name is required")
	}
	return u, nil
}

// endpoint returns u with the scheme's default port made explicit.
func endpoint(u *url.URL) string {
	if u.Port() != "" {
		return u.Scheme + "://" + u.Host
	}
	port := "80"
	if u.Scheme == "https" {
		port = "443"
	}
	return u.Scheme + "://" + u.Hostname() + ":" + port
}
