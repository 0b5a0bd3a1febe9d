package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}

	r.initHTTPMetrics()
	r.initEngineMetrics()
	r.initPlaybackMetrics()
	r.initAssistantMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordResponseSize observes the size of an HTTP response body.
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

// IncHTTPRequestsInFlight marks a request as started.
func (r *Registry) IncHTTPRequestsInFlight() { r.HTTPRequestsInFlight.Inc() }

// DecHTTPRequestsInFlight marks a request as finished.
func (r *Registry) DecHTTPRequestsInFlight() { r.HTTPRequestsInFlight.Dec() }

// RecordOperation records one engine invocation and the size of its trace.
func (r *Registry) RecordOperation(structure, operation, outcome string, frames int, duration time.Duration) {
	r.OperationsTotal.WithLabelValues(structure, operation, outcome).Inc()
	r.EngineDuration.WithLabelValues(structure, operation).Observe(duration.Seconds())
	if frames > 0 {
		r.TraceFrames.WithLabelValues(structure).Observe(float64(frames))
	}
}

// RecordFrameRendered counts a frame handed to a renderer.
func (r *Registry) RecordFrameRendered(structure string) {
	r.FramesRenderedTotal.WithLabelValues(structure).Inc()
}

// RecordPlayback counts a player control action (play, pause, step, reset).
func (r *Registry) RecordPlayback(action string) {
	r.PlaybacksTotal.WithLabelValues(action).Inc()
}

// SessionOpened tracks a new live session.
func (r *Registry) SessionOpened() {
	r.SessionsCreated.Inc()
	r.SessionsActive.Inc()
}

// SessionClosed tracks a discarded session.
func (r *Registry) SessionClosed() {
	r.SessionsActive.Dec()
}

// RecordAssistantAnswer records which resolution tier produced an answer.
func (r *Registry) RecordAssistantAnswer(source string, duration time.Duration) {
	r.AssistantAnswersTotal.WithLabelValues(source).Inc()
	r.AssistantDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordAssistantRemoteError counts a failed remote completion call.
func (r *Registry) RecordAssistantRemoteError() {
	r.AssistantRemoteErrors.Inc()
}

// UpdateSystemMetrics refreshes uptime, goroutine and memory gauges.
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}
