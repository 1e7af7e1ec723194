package es

import (
	"context"
	"net/http"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.
	"github.com/tidwall/gjson"              // Dynamic JSON parsing.
	"go.uber.org/zap"                       // Logging.

	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog" // Logger from context.
)

// BulkIndex sends an NDJSON bulk body to Elasticsearch in the background
// and returns immediately. The request isn't canceled with ctx, but is
// bounded by the configured timeout. Its outcome is only logged and
// counted; callers can't observe it. Gateway.Stop waits for in-flight
// bulk requests.
func (g *Gateway) BulkIndex(ctx context.Context, body string) {
	ctx = ctxlog.Detach(ctx)
	logger := ctxlog.L(ctx).Named("Gateway.BulkIndex")

	g.bulk.Add(1)
	go func() {
		defer g.bulk.Done()

		res, err := g.perform(ctx, opBulk, elastic.PerformRequestOptions{
			Method:      http.MethodPost,
			Path:        "/_bulk",
			Body:        body,
			ContentType: contentTypeNDJSON,
		})
		if err != nil {
			g.inst.BulkFailures.Inc()
			logger.Error("error calling Elasticsearch bulk API", zap.Error(err))
			return
		}

		parsed := gjson.ParseBytes(res.Body)
		items := parsed.Get("items").Array()
		if parsed.Get("errors").Bool() {
			failed := 0
			for _, item := range items {
				item.ForEach(func(_, action gjson.Result) bool {
					if action.Get("error").Exists() {
						failed++
					}
					return true
				})
			}
			logger.Warn("some bulk items failed",
				zap.Int("items", len(items)),
				zap.Int("failed", failed),
			)
			return
		}
		logger.Debug("bulk indexed", zap.Int("items", len(items)))
	}()
}
