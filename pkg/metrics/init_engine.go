package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.OperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "algoviz_operations_total",
			Help: "Total number of algorithm operations by outcome",
		},
		[]string{"structure", "operation", "outcome"},
	)

	r.EngineDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "algoviz_engine_duration_seconds",
			Help:    "Time spent generating a trace",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"structure", "operation"},
	)

	r.TraceFrames = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "algoviz_trace_frames",
			Help:    "Number of frames recorded per trace",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"structure"},
	)
}
