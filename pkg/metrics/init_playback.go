package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPlaybackMetrics() {
	r.FramesRenderedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "algoviz_frames_rendered_total",
			Help: "Total number of frames handed to renderers",
		},
		[]string{"structure"},
	)

	r.PlaybacksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "algoviz_player_actions_total",
			Help: "Total number of player control actions",
		},
		[]string{"action"},
	)

	r.SessionsActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "algoviz_sessions_active",
			Help: "Current number of live visualization sessions",
		},
	)

	r.SessionsCreated = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "algoviz_sessions_created_total",
			Help: "Total number of sessions created",
		},
	)
}
