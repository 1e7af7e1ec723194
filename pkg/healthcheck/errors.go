package healthcheck

// AnalyticsErrorMessage is the message of errors returned by AverageDateHistogramCommand.
const AnalyticsErrorMessage = "Impossible to perform AverageResponseTimeQuery"

// AnalyticsError is returned when an analytics query can't be performed.
type AnalyticsError struct {
	Message string
	Err     error
}

func (e *AnalyticsError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error { return e.Err }

// Cause returns the underlying error for github.com/pkg/errors.Cause.
func (e *AnalyticsError) Cause() error { return e.Err }
