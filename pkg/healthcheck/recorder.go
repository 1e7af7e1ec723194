package healthcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid" // Document IDs.
	"go.uber.org/zap"        // Logging.

	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog" // Logger from context.
	"github.com/mintel/elasticsearch-analytics/pkg/es"     // Elasticsearch gateway.
)

// Event is the result of one health-check of an API endpoint.
type Event struct {
	Timestamp    time.Time `json:"@timestamp"`
	API          string    `json:"api"`
	Endpoint     string    `json:"endpoint"`
	Gateway      string    `json:"gateway"`
	Available    bool      `json:"available"`
	Success      bool      `json:"success"`
	State        int       `json:"state"`
	ResponseTime int64     `json:"response-time"` // Millis.
	Message      string    `json:"message,omitempty"`
}

// BulkIndexer sends bulk requests to Elasticsearch without waiting for the outcome.
type BulkIndexer interface {
	BulkIndex(ctx context.Context, body string)
	MajorVersion() int
	IndexName() string
}

var _ BulkIndexer = (*es.Gateway)(nil)

// newID returns a document ID.
var newID = uuid.NewString

type bulkAction struct {
	Index bulkIndexAction `json:"index"`
}

type bulkIndexAction struct {
	Index string `json:"_index"`
	Type  string `json:"_type,omitempty"`
	ID    string `json:"_id"`
}

// EncodeBulk encodes events as an NDJSON bulk request body that
// indexes each event in its daily index.
func EncodeBulk(events []Event, indexPrefix string, majorVersion int) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, e := range events {
		action := bulkAction{Index: bulkIndexAction{
			Index: es.DailyIndex(indexPrefix, e.Timestamp),
			Type:  docType(majorVersion),
			ID:    newID(),
		}}
		if err := enc.Encode(action); err != nil {
			return "", err
		}
		if err := enc.Encode(e); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Recorder writes health-check events to Elasticsearch.
type Recorder struct {
	Gateway BulkIndexer

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewRecorder returns a new Recorder.
func NewRecorder(g BulkIndexer) *Recorder {
	return &Recorder{Gateway: g, Now: time.Now}
}

// Record sends events to Elasticsearch in the background. Events without
// a timestamp are stamped with the current time. Only encoding errors are
// returned; indexing failures are logged by the gateway.
func (r *Recorder) Record(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}
	logger := ctxlog.L(ctx).Named("Recorder.Record")

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	stamped := make([]Event, len(events))
	for i, e := range events {
		if e.Timestamp.IsZero() {
			e.Timestamp = now()
		}
		stamped[i] = e
	}

	body, err := EncodeBulk(stamped, r.Gateway.IndexName(), r.Gateway.MajorVersion())
	if err != nil {
		logger.Error("error encoding health-check events", zap.Error(err))
		return err
	}
	r.Gateway.BulkIndex(ctx, body)
	logger.Debug("dispatched health-check events", zap.Int("events", len(events)))
	return nil
}
