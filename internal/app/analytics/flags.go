package analytics

import (
	"time"

	kingpin "gopkg.in/alecthomas/kingpin.v2" // Command line flag parsing.

	"github.com/mintel/elasticsearch-analytics/internal/pkg/cmd" // Common command line app tools.
	"github.com/mintel/elasticsearch-analytics/pkg/healthcheck"  // Health-check analytics.
)

const (
	defaultPort            = 8080
	defaultLogLevel        = "INFO"
	defaultShutdownTimeout = 15 * time.Second
)

// Flags holds command line flags for the App.
type Flags struct {
	*cmd.ElasticsearchFlags
	*cmd.LoggingFlags
	*cmd.ServerFlags

	// Time to wait for in-flight requests when shutting down.
	ShutdownTimeout time.Duration

	// Flags of the query command.
	Query struct {
		API          string
		Aggregations []string
		Interval     time.Duration
	}
}

// NewFlags returns a new Flags. Server flags belong to the serve command,
// query flags to the query command, the rest are shared.
func NewFlags(app *kingpin.Application, serve, query *kingpin.CmdClause) *Flags {
	var f Flags

	f.ElasticsearchFlags = cmd.NewElasticsearchFlags(app)
	f.LoggingFlags = cmd.NewLoggingFlags(app, defaultLogLevel)
	f.ServerFlags = cmd.NewServerFlags(serve, defaultPort)

	app.Flag("shutdown-timeout", "Time to wait for in-flight requests when shutting down.").
		Default(defaultShutdownTimeout.String()).
		DurationVar(&f.ShutdownTimeout)

	query.Flag("api", "Only count health-checks of this API.").
		StringVar(&f.Query.API)

	query.Flag("aggregation", "Aggregation as type:field, e.g. field:status or avg:response-time. Repeatable.").
		Short('a').
		Required().
		StringsVar(&f.Query.Aggregations)

	query.Flag("interval", "Date histogram interval.").
		Default(healthcheck.DefaultInterval.String()).
		DurationVar(&f.Query.Interval)

	return &f
}
