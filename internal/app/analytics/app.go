package analytics

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"                          // Wrap errors with stacktrace.
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	"go.uber.org/zap"                                // Logging.
	"golang.org/x/sync/errgroup"                     // Cancel multiple goroutines if one fails.
	kingpin "gopkg.in/alecthomas/kingpin.v2"         // Command line flag parsing.

	"github.com/mintel/elasticsearch-analytics/internal/pkg/cmd"     // Common command line app tools.
	"github.com/mintel/elasticsearch-analytics/internal/pkg/metrics" // Prometheus metrics helpers.
	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog"           // Logger from context.
	"github.com/mintel/elasticsearch-analytics/pkg/es"               // Elasticsearch gateway.
	"github.com/mintel/elasticsearch-analytics/pkg/healthcheck"      // Health-check analytics.
	"github.com/mintel/elasticsearch-analytics/pkg/template"         // Request body templates.
)

const (
	Name  = "healthcheck_analytics"
	Usage = "Serve and query health-check availability and response-time trends stored in Elasticsearch."
)

// Commands.
const (
	serveCommand = "serve"
	queryCommand = "query"
)

// App holds application state.
type App struct {
	*kingpin.Application

	flags  *Flags           // Command line flags
	health *Healthchecks    // healthchecks HTTP handler
	inst   *Instrumentation // Prometheus metrics

	registerer prometheus.Registerer
	command    string
}

// NewApp returns a new App.
func NewApp(r prometheus.Registerer) (*App, error) {
	app := &App{
		Application: kingpin.New(filepath.Base(os.Args[0]), Usage),
		health:      NewHealthchecks(r),
		inst:        NewInstrumentation(metrics.BuildFQName("", Name)),
		registerer:  r,
	}
	if _, err := metrics.RegisterOrExisting(r, app.inst); err != nil {
		return nil, err
	}

	serve := app.Command(serveCommand, "Serve the health-check analytics API.").Default()
	query := app.Command(queryCommand, "Print the date histogram of health-checks over the last month as JSON.")
	app.flags = NewFlags(app.Application, serve, query)

	serve.Action(func(*kingpin.ParseContext) error {
		app.command = serveCommand
		return nil
	})
	query.Action(func(*kingpin.ParseContext) error {
		app.command = queryCommand
		return nil
	})

	return app, nil
}

// Main is the main method of App and should be called
// in main.main() after flag parsing.
func (app *App) Main(g prometheus.Gatherer) {
	logger := app.flags.NewLogger()
	defer func() { _ = logger.Sync() }()
	defer cmd.SetGlobalLogger(logger)()

	ctx, cancel := cmd.WithInterrupt(ctxlog.WithLogger(context.Background(), logger))
	defer cancel()

	var err error
	switch app.command {
	case queryCommand:
		err = app.query(ctx, os.Stdout)
	default:
		err = app.serve(ctx, g)
	}
	if err != nil {
		logger.Fatal("error running "+app.command, zap.Error(err))
	}
}

// startGateway starts an Elasticsearch gateway configured by the command line flags.
func (app *App) startGateway(ctx context.Context) (*es.Gateway, template.Renderer, error) {
	tmpls, err := template.New()
	if err != nil {
		return nil, nil, err
	}
	g, err := es.Start(ctx, app.flags.Config(app.registerer, tmpls))
	if err != nil {
		return nil, nil, err
	}
	return g, tmpls, nil
}

// stopGateway waits at most the shutdown timeout for in-flight bulk requests.
func (app *App) stopGateway(ctx context.Context, g *es.Gateway) {
	stopCtx, cancel := context.WithTimeout(ctxlog.Detach(ctx), app.flags.ShutdownTimeout)
	defer cancel()
	if err := g.Stop(stopCtx); err != nil {
		ctxlog.L(ctx).Warn("error stopping Elasticsearch gateway", zap.Error(err))
	}
}

// serve serves the API, healthchecks and Prometheus metrics until ctx is done.
func (app *App) serve(ctx context.Context, g prometheus.Gatherer) error {
	logger := ctxlog.L(ctx).Named("App.serve")

	gw, tmpls, err := app.startGateway(ctx)
	if err != nil {
		return err
	}
	defer app.stopGateway(ctx, gw)
	app.health.AddGatewayChecks(ctx, gw, app.flags.Timeout)

	api := NewAPI(
		healthcheck.NewAverageDateHistogramCommand(gw, tmpls),
		healthcheck.NewRecorder(gw),
		app.inst,
	)
	mux := app.flags.ConfigureMux(nil, app.health.Handler, g)
	api.Register(mux)

	srv := app.flags.NewServer(mux)
	// Requests keep the logger but aren't canceled at shutdown.
	srv.BaseContext = func(net.Listener) context.Context { return ctxlog.Detach(ctx) }

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("serving", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.flags.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// query runs one date histogram query and writes the response to w as JSON.
func (app *App) query(ctx context.Context, w io.Writer) error {
	q, err := buildQuery(app.flags.Query.API, app.flags.Query.Aggregations, app.flags.Query.Interval)
	if err != nil {
		return err
	}

	gw, tmpls, err := app.startGateway(ctx)
	if err != nil {
		return err
	}
	defer app.stopGateway(ctx, gw)

	resp, err := healthcheck.NewAverageDateHistogramCommand(gw, tmpls).Execute(ctx, q)
	if err != nil {
		app.inst.Queries.With(prometheus.Labels{metrics.LabelStatus: "error"}).Inc()
		return err
	}
	app.inst.Queries.With(prometheus.Labels{metrics.LabelStatus: "success"}).Inc()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
