package es

import (
	"context"
	"net/http"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.
	"github.com/pkg/errors"                 // Wrap errors with stacktrace.
	"go.uber.org/zap"                       // Logging.

	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog"   // Logger from context.
	"github.com/mintel/elasticsearch-analytics/pkg/template" // Request body templates.
)

// TemplateName is the name of the index template installed by EnsureTemplate.
const TemplateName = "gravitee"

// IndexTemplateData is passed to the index template.
type IndexTemplateData struct {
	IndexName        string
	NumberOfShards   int
	NumberOfReplicas int
}

// EnsureTemplate installs the index template matching the detected
// Elasticsearch major version. It is idempotent.
func (g *Gateway) EnsureTemplate(ctx context.Context) error {
	logger := ctxlog.L(ctx).Named("Gateway.EnsureTemplate").With(zap.Int("major_version", g.major))

	if g.config.Templates == nil {
		return &TechnicalError{Op: opTemplate, Err: errors.New("no index templates configured")}
	}
	body, err := g.config.Templates.Render(template.IndexTemplateName(g.major), IndexTemplateData{
		IndexName:        g.config.IndexName,
		NumberOfShards:   g.config.NumberOfShards,
		NumberOfReplicas: g.config.NumberOfReplicas,
	})
	if err != nil {
		return &TechnicalError{Op: opTemplate, Err: err}
	}

	res, err := g.perform(ctx, opTemplate, elastic.PerformRequestOptions{
		Method:      http.MethodPut,
		Path:        "/_template/" + TemplateName,
		Body:        body,
		ContentType: contentTypeJSON,
	})
	if err != nil {
		return err
	}
	logger.Debug("put index template", zap.ByteString("response", res.Body))
	return nil
}
