package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAssistantMetrics() {
	r.AssistantAnswersTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "algoviz_assistant_answers_total",
			Help: "Total number of assistant answers by source",
		},
		[]string{"source"},
	)

	r.AssistantRemoteErrors = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "algoviz_assistant_remote_errors_total",
			Help: "Total number of failed remote completion calls",
		},
	)

	r.AssistantDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "algoviz_assistant_duration_seconds",
			Help:    "Time taken to answer a question",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)
}
