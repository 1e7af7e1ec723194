package es

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.
	"github.com/pkg/errors"                 // Wrap errors with stacktrace.
	"github.com/tidwall/gjson"              // Dynamic JSON parsing.
	"go.uber.org/zap"                       // Logging.

	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog" // Logger from context.
)

// minSupportedMajorVersion is the oldest major version with an index template.
const minSupportedMajorVersion = 2

// detectMajorVersion gets the root endpoint and parses version.number.
func (g *Gateway) detectMajorVersion(ctx context.Context) (int, error) {
	logger := ctxlog.L(ctx).Named("Gateway.detectMajorVersion")

	res, err := g.perform(ctx, opVersion, elastic.PerformRequestOptions{
		Method: http.MethodGet,
		Path:   "/",
	})
	if err != nil {
		return 0, err
	}

	number := gjson.GetBytes(res.Body, "version.number").String()
	major, err := ParseMajorVersion(number)
	if err != nil {
		return 0, err
	}
	logger = logger.With(zap.String("version", number), zap.Int("major_version", major))
	if major < minSupportedMajorVersion {
		logger.Warn("please upgrade to Elasticsearch 2 or later")
	} else {
		logger.Debug("detected Elasticsearch version")
	}
	return major, nil
}

// ParseMajorVersion returns the leading integer of a version string like "7.10.2".
func ParseMajorVersion(version string) (int, error) {
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(head)
	if err != nil || major < 0 {
		return 0, errors.Errorf("invalid Elasticsearch version %q", version)
	}
	return major, nil
}
