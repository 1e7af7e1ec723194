package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// VecTimer is a helper type to time functions.
// It is similar to prometheus.Timer, but takes a prometheus.ObserverVec,
// and can add labels to it when the VecTimer is observed.
// Use NewVecTimer to create new instances.
type VecTimer struct {
	begin  time.Time
	vec    prometheus.ObserverVec
	labels prometheus.Labels
}

// NewVecTimer creates a new VecTimer. The provided ObserverVec is used to observe a
// duration in seconds. constLabels are added to every observation.
// Timer is usually used to time a function call in the following way:
//
//	func TimeMe() (err error) {
//	    timer := NewVecTimer(myHistogramVec, prometheus.Labels{LabelOperation: "search"})
//	    defer func() { timer.ObserveErr(err) }()
//	    // Do actual work.
//	}
func NewVecTimer(v prometheus.ObserverVec, constLabels prometheus.Labels) *VecTimer {
	return &VecTimer{
		begin:  time.Now(),
		vec:    v,
		labels: constLabels,
	}
}

// ObserveWith records the duration passed since the VecTimer was created,
// with the given labels in addition to the VecTimer's constant labels.
// The observed duration is also returned.
func (t *VecTimer) ObserveWith(labels prometheus.Labels) time.Duration {
	d := time.Since(t.begin)
	if t.vec != nil {
		all := make(prometheus.Labels, len(t.labels)+len(labels))
		for k, v := range t.labels {
			all[k] = v
		}
		for k, v := range labels {
			all[k] = v
		}
		t.vec.With(all).Observe(d.Seconds())
	}
	return d
}

// ObserveErr sets a label equal to LabelStatus based on the err value and records the
// duration passed since the VecTimer was created.
// The observed duration is also returned.
func (t *VecTimer) ObserveErr(err error) time.Duration {
	status := "success"
	if err != nil {
		status = "error"
	}
	return t.ObserveWith(prometheus.Labels{LabelStatus: status})
}
