package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Engine Metrics
	OperationsTotal *prometheus.CounterVec
	EngineDuration  *prometheus.HistogramVec
	TraceFrames     *prometheus.HistogramVec

	// Playback Metrics
	FramesRenderedTotal *prometheus.CounterVec
	PlaybacksTotal      *prometheus.CounterVec
	SessionsActive      prometheus.Gauge
	SessionsCreated     prometheus.Counter

	// Assistant Metrics
	AssistantAnswersTotal *prometheus.CounterVec
	AssistantRemoteErrors prometheus.Counter
	AssistantDuration     *prometheus.HistogramVec

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	started  time.Time
	registry *prometheus.Registry
	mu       sync.RWMutex
}

// Operation outcomes used as the "outcome" label.
const (
	OutcomeSuccess   = "success"
	OutcomeDeclined  = "declined"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
)

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)
