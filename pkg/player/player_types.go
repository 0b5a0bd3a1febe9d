package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// State is the playback state of a Player.
type State string

const (
	StateIdle      State = "idle"
	StatePlaying   State = "playing"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// ErrPlaying is returned by Play when playback is already running.
var ErrPlaying = errors.New("player: already playing")

// Speed slider bounds.
const (
	MinSpeed     = 1
	MaxSpeed     = 100
	DefaultSpeed = 50
)

// Renderer receives every frame the player displays. index is the frame's
// position in the trace, or ResetIndex for the cleared view shown by Reset.
// Render is called with the player locked and must not call back into it.
type Renderer interface {
	Render(index int, f trace.Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(index int, f trace.Frame)

func (fn RendererFunc) Render(index int, f trace.Frame) { fn(index, f) }

// ResetIndex is passed to Render for the cleared view after Reset.
const ResetIndex = -1

// Player drives frame-by-frame playback of one finished Trace.
//
// The cursor is the index of the next frame to render: 0 before anything
// has been shown and Len() once the last frame has been shown. It only ever
// moves forward, except through Reset.
type Player struct {
	mu       sync.Mutex
	trace    *trace.Trace
	renderer Renderer
	cursor   int
	state    State
	shown    trace.Frame
	hasShown bool

	cancel context.CancelFunc
	done   chan struct{}

	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the player's logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// WithMetrics sets the registry that counts rendered frames and controls.
func WithMetrics(r *metrics.Registry) Option {
	return func(p *Player) { p.metrics = r }
}

// DelayForSpeed maps the 1..100 speed slider to the delay between frames:
// 1000 - 9*speed milliseconds, so 1 is slowest (991ms) and 100 fastest (100ms).
func DelayForSpeed(speed int) time.Duration {
	speed = min(max(speed, MinSpeed), MaxSpeed)
	return time.Duration(1000-9*speed) * time.Millisecond
}
