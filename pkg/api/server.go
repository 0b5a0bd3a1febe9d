package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-algoviz/pkg/api/middleware"
	"github.com/dd0wney/cluso-algoviz/pkg/assistant"
	"github.com/dd0wney/cluso-algoviz/pkg/health"
	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
	"github.com/dd0wney/cluso-algoviz/pkg/session"
)

// NewServer creates the API. A nil assistant disables /api/chat.
func NewServer(sessions *session.Manager, asst *assistant.Assistant, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewRegistry()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		sessions:  sessions,
		assistant: asst,
		health:    health.NewChecker(health.DefaultTimeout),
		metrics:   opts.Metrics,
		logger:    opts.Logger.With(logging.Component("api")),
		opts:      opts,
		startTime: time.Now(),
	}
	if opts.RateLimit > 0 {
		cfg := middleware.DefaultRateLimitConfig()
		cfg.RequestsPerSecond = opts.RateLimit
		cfg.BurstSize = max(1, int(2*opts.RateLimit))
		cfg.Logger = s.logger
		s.limiter = middleware.NewRateLimiter(cfg)
	}
	s.registerHealthChecks()
	return s
}

func (s *Server) registerHealthChecks() {
	s.health.Register("engines", health.EngineCheck(health.EngineSelfTests()), health.ScopeHealth|health.ScopeReady)
	s.health.Register("sessions", health.SessionsCheck(func() (int, int) {
		return s.sessions.Len(), s.opts.MaxSessions
	}), health.ScopeHealth|health.ScopeReady)
	if s.assistant != nil {
		s.health.Register("assistant", health.AssistantCheck(s.assistant.RemoteStatus), health.ScopeHealth)
	}
	s.health.Register("process", health.ProcessCheck(), health.ScopeLive)
}

// Handler returns the routed API wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.routes()
	h = middleware.Metrics(s.metrics)(h)
	h = middleware.RateLimit(s.limiter, middleware.ClientIP(s.opts.TrustedProxies), func(r *http.Request, clientID string) {
		s.logger.Warn("rate limit exceeded", logging.String("client", clientID), logging.Path(r.URL.Path))
	})(h)
	h = middleware.BodySizeLimit(s.opts.MaxBodyBytes)(h)
	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = s.opts.CORSOrigins
	h = middleware.CORS(cors)(h)
	h = middleware.SecurityHeaders(&middleware.SecurityHeadersConfig{TLSEnabled: s.opts.TLSEnabled})(h)
	h = middleware.Logging(s.logger)(h)
	h = middleware.RequestID()(h)
	h = middleware.PanicRecovery(s.logger)(h)
	return h
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/ready", s.health.Handler(health.ScopeReady))
	mux.HandleFunc("GET /health/live", s.health.Handler(health.ScopeLive))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	// Catalogue
	mux.HandleFunc("GET /api/kinds", s.handleKinds)
	mux.HandleFunc("GET /api/kinds/{kind}/operations", s.handleOperations)
	mux.HandleFunc("GET /api/sample/{kind}", s.handleSample)

	// Stateless trace
	mux.HandleFunc("POST /api/trace", s.handleTrace)

	// Sessions
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("PUT /api/sessions/{id}/structure", s.handleLoadStructure)
	mux.HandleFunc("POST /api/sessions/{id}/operations", s.handleApply)
	mux.HandleFunc("GET /api/sessions/{id}/view", s.handleView)
	mux.HandleFunc("GET /api/sessions/{id}/events", s.handleEvents)

	// Player
	mux.HandleFunc("GET /api/sessions/{id}/player", s.handlePlayerState)
	mux.HandleFunc("POST /api/sessions/{id}/player/{action}", s.handlePlayerAction)
	mux.HandleFunc("PUT /api/sessions/{id}/speed", s.handleSpeed)

	// Assistant
	mux.HandleFunc("POST /api/chat", s.handleChat)

	return mux
}

// UpdateMetricsPeriodically refreshes the system gauges until ctx is done.
func (s *Server) UpdateMetricsPeriodically(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.metrics.UpdateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.metrics.UpdateSystemMetrics()
		}
	}
}

// Close stops the rate limiter. Sessions belong to the manager and are
// closed by its owner.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
