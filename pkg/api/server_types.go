package api

import (
	"net"
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/api/middleware"
	"github.com/dd0wney/cluso-algoviz/pkg/assistant"
	"github.com/dd0wney/cluso-algoviz/pkg/events"
	"github.com/dd0wney/cluso-algoviz/pkg/health"
	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
	"github.com/dd0wney/cluso-algoviz/pkg/session"
)

// Options configures the HTTP API.
type Options struct {
	Version        string
	MaxSessions    int   // reported by the sessions health check, 0 for unbounded
	MaxBodyBytes   int64 // request body cap, 0 disables
	CORSOrigins    []string
	RateLimit      float64 // requests per second per client, 0 disables
	TrustedProxies []*net.IPNet
	TLSEnabled     bool
	Logger         logging.Logger
	Metrics        *metrics.Registry
	// Events streams frames at /api/sessions/{id}/events. It must be the
	// broker the session manager publishes to; nil disables streaming.
	Events *events.Broker[events.FrameEvent]
}

// Server is the HTTP shell around the session manager and the assistant.
type Server struct {
	sessions  *session.Manager
	assistant *assistant.Assistant
	health    *health.Checker
	metrics   *metrics.Registry
	limiter   *middleware.RateLimiter
	logger    logging.Logger
	opts      Options
	startTime time.Time
}
