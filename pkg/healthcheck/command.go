package healthcheck

import (
	"context"
	"time"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.
	"github.com/pkg/errors"                 // Wrap errors with stacktrace.
	"go.uber.org/zap"                       // Logging.

	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog"      // Logger from context.
	"github.com/mintel/elasticsearch-analytics/pkg/es"          // Elasticsearch gateway.
	"github.com/mintel/elasticsearch-analytics/pkg/template"    // Request body templates.
	estime "github.com/mintel/elasticsearch-analytics/pkg/time" // Calendar helpers.
)

const (
	// DocType is the mapping type of health-check documents on
	// Elasticsearch versions that still have mapping types.
	DocType = "health"

	// AvgDateHistogramTemplate is the name of the search body template.
	AvgDateHistogramTemplate = "healthcheck/avg-date-histogram"

	// typelessMajorVersion is the first Elasticsearch major version without mapping types.
	typelessMajorVersion = 7
)

// Searcher runs searches against Elasticsearch.
type Searcher interface {
	Search(ctx context.Context, indices, docType, body string) (*elastic.SearchResult, error)
	MajorVersion() int
	IndexName() string
}

var _ Searcher = (*es.Gateway)(nil)

// AverageDateHistogramCommand runs a DateHistogramQuery over the last month
// of health-check indices.
type AverageDateHistogramCommand struct {
	Gateway   Searcher
	Templates template.Renderer

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewAverageDateHistogramCommand returns a new AverageDateHistogramCommand.
func NewAverageDateHistogramCommand(g Searcher, t template.Renderer) *AverageDateHistogramCommand {
	return &AverageDateHistogramCommand{
		Gateway:   g,
		Templates: t,
		Now:       time.Now,
	}
}

// searchData is passed to AvgDateHistogramTemplate.
type searchData struct {
	Root         *Root
	Aggregations []Aggregation
	From, To     int64 // Epoch millis.
	Interval     int64 // Millis.
	MajorVersion int
}

// Execute runs q. All errors are returned as *AnalyticsError.
func (c *AverageDateHistogramCommand) Execute(ctx context.Context, q *DateHistogramQuery) (*DateHistogramResponse, error) {
	logger := ctxlog.L(ctx).Named("AverageDateHistogramCommand.Execute")
	fail := func(err error) (*DateHistogramResponse, error) {
		logger.Error(AnalyticsErrorMessage, zap.Error(err))
		return nil, &AnalyticsError{Message: AnalyticsErrorMessage, Err: err}
	}
	if q == nil {
		return fail(errors.New("nil query"))
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	from, to := estime.MonthsBefore(now(), 1)
	major := c.Gateway.MajorVersion()

	body, err := c.Templates.Render(AvgDateHistogramTemplate, searchData{
		Root:         q.Root,
		Aggregations: q.uniqueAggregations(),
		From:         from.UnixMilli(),
		To:           to.UnixMilli(),
		Interval:     q.interval().Milliseconds(),
		MajorVersion: major,
	})
	if err != nil {
		return fail(err)
	}

	indices := es.DailyIndices(c.Gateway.IndexName(), from, to)
	logger.Debug("searching health-checks",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("aggregations", len(q.Aggregations)),
	)
	res, err := c.Gateway.Search(ctx, indices, docType(major), body)
	if err != nil {
		return fail(err)
	}
	return Translate(res, q), nil
}

// docType returns the mapping type to search for a major version.
// An undetected version (0) is treated as typeless.
func docType(major int) string {
	if major > 0 && major < typelessMajorVersion {
		return DocType
	}
	return ""
}
