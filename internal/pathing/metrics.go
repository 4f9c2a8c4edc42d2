package pathing

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives one observation per finished calculation.
type Recorder interface {
	Observe(outcome Outcome, expanded int, elapsed time.Duration)
}

// PrometheusRecorder exports calculation metrics to a Prometheus registry.
type PrometheusRecorder struct {
	Calculations *prometheus.CounterVec
	Expanded     prometheus.Histogram
	Duration     *prometheus.HistogramVec
}

// NewPrometheusRecorder creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathfind_calculations_total",
			Help: "Total path calculations by outcome",
		}, []string{"outcome"}),
		Expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathfind_expanded_nodes",
			Help:    "Nodes expanded per calculation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~260k
		}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathfind_calculation_seconds",
			Help:    "Wall-clock duration of path calculations",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(r.Calculations, r.Expanded, r.Duration)
	}
	return r
}

// Observe implements Recorder.
func (r *PrometheusRecorder) Observe(outcome Outcome, expanded int, elapsed time.Duration) {
	label := outcome.String()
	r.Calculations.WithLabelValues(label).Inc()
	r.Expanded.Observe(float64(expanded))
	r.Duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

var (
	defaultRecorderOnce sync.Once
	defaultRecorder     *PrometheusRecorder
)

// DefaultRecorder returns the process-wide recorder registered with
// prometheus.DefaultRegisterer.
func DefaultRecorder() *PrometheusRecorder {
	defaultRecorderOnce.Do(func() {
		defaultRecorder = NewPrometheusRecorder(prometheus.DefaultRegisterer)
	})
	return defaultRecorder
}
