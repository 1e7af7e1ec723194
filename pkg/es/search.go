package es

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.
	"go.uber.org/zap"                       // Logging.

	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog" // Logger from context.
)

// Search runs the JSON query body against indices, a comma-separated
// list of index names or patterns. Empty indices searches all indices.
// docType is only set for Elasticsearch versions that have mapping types.
// Unavailable indices are ignored.
func (g *Gateway) Search(ctx context.Context, indices, docType, body string) (*elastic.SearchResult, error) {
	logger := ctxlog.L(ctx).Named("Gateway.Search").With(
		zap.String("indices", indices),
		zap.String("type", docType),
	)

	res, err := g.perform(ctx, opSearch, elastic.PerformRequestOptions{
		Method:      http.MethodPost,
		Path:        searchPath(indices, docType),
		Params:      url.Values{"ignore_unavailable": []string{"true"}},
		Body:        body,
		ContentType: contentTypeJSON,
	})
	if err != nil {
		logger.Error("error searching Elasticsearch", zap.Error(err))
		return nil, err
	}

	result := new(elastic.SearchResult)
	if err := json.Unmarshal(res.Body, result); err != nil {
		logger.Error("error decoding search response", zap.Error(err))
		return nil, &TechnicalError{Op: opSearch, Err: err}
	}
	logger.Debug("searched Elasticsearch", zap.Int64("took_ms", result.TookInMillis))
	return result, nil
}

func searchPath(indices, docType string) string {
	if indices == "" {
		indices = "_all"
	}
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(indices)
	if docType != "" {
		b.WriteString("/")
		b.WriteString(docType)
	}
	b.WriteString("/_search")
	return b.String()
}
