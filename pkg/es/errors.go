package es

import (
	"fmt"

	elastic "github.com/olivere/elastic/v7" // Elasticsearch client.
	"github.com/pkg/errors"                 // Wrap errors with stacktrace.
)

// TechnicalError is returned when a call to Elasticsearch fails,
// either in transport (connection refused, timeout, TLS) or
// because Elasticsearch responded with a non-200 status.
type TechnicalError struct {
	Op     string // Gateway operation, e.g. "search".
	Status int    // HTTP status code, or 0 for transport errors.
	Err    error
}

func (e *TechnicalError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("elasticsearch %s failed with status %d: %s", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("elasticsearch %s failed: %s", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TechnicalError) Unwrap() error { return e.Err }

// Cause returns the underlying error for github.com/pkg/errors.Cause.
func (e *TechnicalError) Cause() error { return e.Err }

// IsTechnical returns true if err is or wraps a *TechnicalError.
func IsTechnical(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func newTechnicalError(op string, err error) *TechnicalError {
	te := &TechnicalError{Op: op, Err: err}
	var ee *elastic.Error
	if errors.As(err, &ee) {
		te.Status = ee.Status
	}
	return te
}

func unexpectedStatus(op string, status int) *TechnicalError {
	return &TechnicalError{
		Op:     op,
		Status: status,
		Err:    errors.Errorf("unexpected response status %d", status),
	}
}
