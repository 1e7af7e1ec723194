// Package es implements a gateway to an Elasticsearch cluster reachable
// over HTTP: cluster health, search, index template bootstrap, and
// fire-and-forget bulk indexing.
package es

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	elastic "github.com/olivere/elastic/v7"          // Elasticsearch client.
	"github.com/pkg/errors"                          // Wrap errors with stacktrace.
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	"go.uber.org/zap"                                // Logging.

	"github.com/mintel/elasticsearch-analytics/internal/pkg/metrics" // Prometheus metrics helpers.
	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog"           // Logger from context.
)

// Gateway operation names, used in errors and metric labels.
const (
	opVersion       = "version"
	opClusterHealth = "cluster_health"
	opSearch        = "search"
	opTemplate      = "template"
	opBulk          = "bulk"
)

// StartupState describes the outcome of the best-effort bootstrap in Start.
type StartupState int

const (
	// StartupReady means the version was detected and the index template installed.
	StartupReady StartupState = iota

	// StartupDegraded means the bootstrap failed. The Gateway is still usable.
	StartupDegraded
)

func (s StartupState) String() string {
	switch s {
	case StartupReady:
		return "ready"
	case StartupDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Startup is the result of Start's bootstrap sequence.
type Startup struct {
	State  StartupState
	Reason error // Set when State is StartupDegraded.
}

// Err returns nil if the startup is ready, else an error describing why not.
func (s Startup) Err() error {
	if s.State == StartupReady {
		return nil
	}
	if s.Reason == nil {
		return errors.New("elasticsearch gateway startup degraded")
	}
	return errors.Wrap(s.Reason, "elasticsearch gateway startup degraded")
}

// Gateway is a long-lived client of one Elasticsearch endpoint.
// It is safe for concurrent use. Every call is an independent
// request/response pair: a failed call never affects the next one.
type Gateway struct {
	client  *http.Client
	config  Config
	url     string
	inst    *instrumentation
	major   int
	startup Startup
	bulk    sync.WaitGroup
}

// Start returns a new Gateway. It only fails if the configuration is invalid
// or the HTTP client can't be built. Detecting the Elasticsearch version and
// installing the index template are best effort: their failure is logged and
// reported by Gateway.Startup.
func Start(ctx context.Context, cfg Config) (*Gateway, error) {
	logger := ctxlog.L(ctx).Named("Gateway.Start")

	u, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	g := &Gateway{
		config: cfg,
		url:    endpoint(u),
	}
	logger = logger.With(zap.String("url", g.url))

	if g.inst, err = newInstrumentation(cfg.Registerer); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport
	if u.Scheme == "https" {
		// Internal clusters commonly use self-signed certificates.
		logger.Warn("TLS certificate verification is disabled for Elasticsearch")
		transport = insecureTransport(transport)
	}
	ht := &headerTransport{next: transport}
	if cfg.Username != "" {
		ht.authorization = basicAuthorization(cfg.Username, cfg.Password)
	}
	g.client, err = metrics.InstrumentHTTP(
		&http.Client{Transport: ht, Timeout: cfg.Timeout},
		cfg.Registerer,
		metrics.Namespace,
		prometheus.Labels{"recipient": "elasticsearch"},
	)
	if err != nil {
		return nil, err
	}

	g.startup = g.bootstrap(ctx)
	return g, nil
}

// bootstrap detects the Elasticsearch major version and installs the index template.
func (g *Gateway) bootstrap(ctx context.Context) Startup {
	logger := ctxlog.L(ctx).Named("Gateway.Start").With(zap.String("url", g.url))

	major, err := g.detectMajorVersion(ctx)
	if err == nil {
		g.major = major
		g.inst.MajorVersion.Set(float64(major))
		err = g.EnsureTemplate(ctx)
	}
	if err != nil {
		logger.Error("error getting information from Elasticsearch", zap.Error(err))
		g.inst.StartupDegraded.Set(1)
		return Startup{State: StartupDegraded, Reason: err}
	}
	g.inst.StartupDegraded.Set(0)
	logger.Info("Elasticsearch gateway ready", zap.Int("major_version", major))
	return Startup{State: StartupReady}
}

// Stop waits for in-flight bulk requests to finish, or ctx to be done,
// then closes idle connections.
func (g *Gateway) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.bulk.Wait()
		close(done)
	}()
	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = errors.Wrap(ctx.Err(), "waiting for bulk requests")
	}
	g.client.CloseIdleConnections()
	return err
}

// MajorVersion returns the Elasticsearch major version detected at startup,
// or 0 if it couldn't be detected.
func (g *Gateway) MajorVersion() int {
	return g.major
}

// Startup returns the result of the bootstrap performed by Start.
func (g *Gateway) Startup() Startup {
	return g.startup
}

// IndexName returns the configured index name prefix.
func (g *Gateway) IndexName() string {
	return g.config.IndexName
}

// perform sends a request to Elasticsearch, bounded by the configured timeout.
// Transport errors and non-200 responses are returned as *TechnicalError.
// Every call is sent on its own: a failed call never keeps the next one
// from reaching Elasticsearch.
func (g *Gateway) perform(ctx context.Context, op string, opts elastic.PerformRequestOptions) (res *elastic.Response, err error) {
	timer := metrics.NewVecTimer(g.inst.RequestDuration, prometheus.Labels{metrics.LabelOperation: op})
	defer func() { timer.ObserveErr(err) }()

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	req, err := g.newRequest(ctx, opts)
	if err != nil {
		return nil, &TechnicalError{Op: op, Err: err}
	}
	resp, err := g.client.Do(req)
	if err != nil {
		g.countError(op, 0)
		return nil, newTechnicalError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.countError(op, resp.StatusCode)
		return nil, newTechnicalError(op, responseError(resp))
	}
	if resp.StatusCode != http.StatusOK {
		g.countError(op, resp.StatusCode)
		return nil, unexpectedStatus(op, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.countError(op, 0)
		return nil, newTechnicalError(op, errors.Wrap(err, "error reading response body"))
	}
	return &elastic.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       json.RawMessage(body),
	}, nil
}

// responseError decodes the error body of a failed response into an
// *elastic.Error. Status is always the response status code.
func responseError(resp *http.Response) *elastic.Error {
	e := &elastic.Error{Status: resp.StatusCode}
	data, err := io.ReadAll(resp.Body)
	if err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, e)
	}
	e.Status = resp.StatusCode
	return e
}

// newRequest builds the HTTP request for opts. String bodies are sent
// as they are, other bodies are encoded as JSON.
func (g *Gateway) newRequest(ctx context.Context, opts elastic.PerformRequestOptions) (*http.Request, error) {
	target := g.url + opts.Path
	if len(opts.Params) > 0 {
		target += "?" + opts.Params.Encode()
	}

	var body io.Reader
	switch b := opts.Body.(type) {
	case nil:
	case string:
		body = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, errors.Wrap(err, "error encoding request body")
		}
		body = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "error building request")
	}
	if opts.ContentType != "" {
		req.Header.Set("Content-Type", opts.ContentType)
	}
	return req, nil
}

// countError counts a failed operation by the status code of status.
// See metrics.ElasticsearchStatusCode for the accepted types.
func (g *Gateway) countError(op string, status interface{}) {
	g.inst.RequestErrors.With(prometheus.Labels{
		metrics.LabelOperation:  op,
		metrics.LabelStatusCode: metrics.ElasticsearchStatusCode(status),
	}).Inc()
}

// insecureTransport returns a copy of rt that skips TLS certificate verification.
// RoundTrippers that aren't an *http.Transport are returned unchanged.
func insecureTransport(rt http.RoundTripper) http.RoundTripper {
	t, ok := rt.(*http.Transport)
	if !ok {
		return rt
	}
	t = t.Clone()
	if t.TLSClientConfig == nil {
		t.TLSClientConfig = &tls.Config{}
	}
	t.TLSClientConfig.InsecureSkipVerify = true // nolint: gosec
	return t
}
