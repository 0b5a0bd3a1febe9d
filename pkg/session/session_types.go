package session

import (
	"errors"
	"sync"
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/events"
	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/player"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
	"github.com/dd0wney/cluso-algoviz/pkg/visualization"
)

var (
	// ErrBusy is returned when an operation is requested while another one
	// is still generating its trace.
	ErrBusy = errors.New("session: operation in progress")

	// ErrSessionNotFound is returned by the Manager for unknown ids.
	ErrSessionNotFound = errors.New("session: not found")
)

// CreateRequest describes the structure a session starts with.
type CreateRequest struct {
	Kind     string     `json:"kind" validate:"required,kind"`
	Values   []int      `json:"values,omitempty" validate:"max=64,dive,min=-9999,max=9999"`
	Items    []string   `json:"items,omitempty" validate:"max=64,dive,required,max=32"`
	Order    string     `json:"order,omitempty" validate:"omitempty,order"`
	Unbuilt  bool       `json:"unbuilt,omitempty"` // heap values keep slot order for a buildHeap demo
	Directed bool       `json:"directed,omitempty"`
	Doubly   bool       `json:"doubly,omitempty"`
	Vertices []string   `json:"vertices,omitempty" validate:"max=26,dive,vertexkey"`
	Edges    []EdgeSpec `json:"edges,omitempty" validate:"max=128,dive"`
	Sample   bool       `json:"sample,omitempty"`
	Random   bool       `json:"random,omitempty"`
	Seed     *uint64    `json:"seed,omitempty"`
	Speed    int        `json:"speed,omitempty" validate:"omitempty,min=1,max=100"`
}

// EdgeSpec is one edge of an initial graph.
type EdgeSpec struct {
	From string `json:"from" validate:"required,vertexkey"`
	To   string `json:"to" validate:"required,vertexkey"`
}

// Request invokes one operation. Which parameters must be present depends
// on the operation.
type Request struct {
	Operation string   `json:"operation" validate:"required,max=32"`
	Value     *int     `json:"value,omitempty" validate:"omitempty,min=-9999,max=9999"`
	Key       *int     `json:"key,omitempty" validate:"omitempty,min=-9999,max=9999"`
	Position  *int     `json:"position,omitempty" validate:"omitempty,min=0,max=9999"`
	Item      string   `json:"item,omitempty" validate:"max=32"`
	Vertex    string   `json:"vertex,omitempty" validate:"omitempty,vertexkey"`
	From      string   `json:"from,omitempty" validate:"omitempty,vertexkey"`
	To        string   `json:"to,omitempty" validate:"omitempty,vertexkey"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
}

// Outcome classifies a completed request.
type Outcome string

const (
	// OutcomeApplied: the operation completed and its final structure is live.
	OutcomeApplied Outcome = "applied"
	// OutcomeDeclined: the engine declined (empty, not found, duplicate);
	// the previous structure is retained and the explanatory trace plays.
	OutcomeDeclined Outcome = "declined"
	// OutcomeRejected: the request never reached an engine.
	OutcomeRejected Outcome = "rejected"
)

// Result is the outcome of one request.
type Result struct {
	Operation string
	Outcome   Outcome
	Notice    string
	Trace     *trace.Trace
	Elapsed   time.Duration
}

// Session owns one live structure, the trace of its latest operation and
// the player for that trace.
type Session struct {
	id      string
	created time.Time

	// op serializes operations; mu guards the fields below.
	op sync.Mutex
	mu sync.RWMutex

	structure model.Structure
	last      *Result
	player    *player.Player
	speed     int
	renderer  player.Renderer
	events    *events.Broker[events.FrameEvent]
	layout    *visualization.LayoutConfig

	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session's logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithMetrics sets the metrics registry shared with the session's players.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Session) { s.metrics = r }
}

// WithEvents publishes every frame the session's players show to b, on
// the session id's topic.
func WithEvents(b *events.Broker[events.FrameEvent]) Option {
	return func(s *Session) { s.events = b }
}

// WithRenderer attaches a renderer to every player the session creates.
func WithRenderer(r player.Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithLayout sets the canvas used to place new graph vertices.
func WithLayout(cfg *visualization.LayoutConfig) Option {
	return func(s *Session) { s.layout = cfg }
}
