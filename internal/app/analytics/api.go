package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"                                  // Request IDs.
	"github.com/pkg/errors"                                   // Wrap errors with stacktrace.
	"github.com/prometheus/client_golang/prometheus"          // Prometheus metrics.
	"github.com/prometheus/client_golang/prometheus/promhttp" // Prometheus HTTP instrumentation.
	"go.uber.org/zap"                                         // Logging.

	"github.com/mintel/elasticsearch-analytics/internal/pkg/metrics" // Prometheus metrics helpers.
	"github.com/mintel/elasticsearch-analytics/pkg/ctxlog"           // Logger from context.
	"github.com/mintel/elasticsearch-analytics/pkg/healthcheck"      // Health-check analytics.
)

// API paths.
const (
	AvailabilityPath = "/api/healthchecks/availability"
	EventsPath       = "/api/healthchecks"
)

// maxEventsBody is the largest accepted events request body.
const maxEventsBody = 10 << 20

// Querier executes date histogram queries.
type Querier interface {
	Execute(ctx context.Context, q *healthcheck.DateHistogramQuery) (*healthcheck.DateHistogramResponse, error)
}

// EventRecorder records health-check events.
type EventRecorder interface {
	Record(ctx context.Context, events ...healthcheck.Event) error
}

var (
	_ Querier       = (*healthcheck.AverageDateHistogramCommand)(nil)
	_ EventRecorder = (*healthcheck.Recorder)(nil)
)

// API serves the health-check analytics HTTP API.
type API struct {
	querier  Querier
	recorder EventRecorder
	inst     *Instrumentation
}

// NewAPI returns a new API.
func NewAPI(q Querier, r EventRecorder, inst *Instrumentation) *API {
	return &API{querier: q, recorder: r, inst: inst}
}

// Register adds the API handlers to mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.Handle("GET "+AvailabilityPath, a.instrument("availability", a.availability))
	mux.Handle("POST "+EventsPath, a.instrument("events", a.events))
}

// instrument observes request durations and adds a request-scoped logger.
func (a *API) instrument(name string, h http.HandlerFunc) http.Handler {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxlog.WithFields(r.Context(),
			zap.String("request_id", uuid.NewString()),
			zap.String("handler", name),
		)
		h(w, r.WithContext(ctx))
	})
	obs := a.inst.APIRequestDuration.MustCurryWith(prometheus.Labels{labelHandler: name})
	return promhttp.InstrumentHandlerDuration(obs, handler)
}

// availability handles
// GET /api/healthchecks/availability?aggregation=field:status&aggregation=avg:response-time&api=<id>&interval=1h
func (a *API) availability(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.L(r.Context()).Named("API.availability")

	params := r.URL.Query()
	var interval time.Duration
	if s := params.Get("interval"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, errors.Errorf("invalid interval %q", s))
			return
		}
		interval = d
	}
	if len(params["aggregation"]) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("at least one aggregation is required"))
		return
	}
	q, err := buildQuery(params.Get("api"), params["aggregation"], interval)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := a.querier.Execute(r.Context(), q)
	if err != nil {
		a.inst.Queries.With(prometheus.Labels{metrics.LabelStatus: "error"}).Inc()
		var ae *healthcheck.AnalyticsError
		if errors.As(err, &ae) {
			writeJSON(w, http.StatusBadGateway, errorResponse{Message: ae.Message})
			return
		}
		logger.Error("error executing query", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	a.inst.Queries.With(prometheus.Labels{metrics.LabelStatus: "success"}).Inc()
	logger.Debug("served availability", zap.Int("timestamps", len(resp.Timestamps)))
	writeJSON(w, http.StatusOK, resp)
}

// events handles POST /api/healthchecks with a JSON array of events.
// Events are indexed in the background.
func (a *API) events(w http.ResponseWriter, r *http.Request) {
	var events []healthcheck.Event
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventsBody))
	if err := dec.Decode(&events); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid events"))
		return
	}
	if err := a.recorder.Record(r.Context(), events...); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	a.inst.EventsRecorded.Add(float64(len(events)))
	w.WriteHeader(http.StatusAccepted)
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
