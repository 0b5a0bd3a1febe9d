package player

import (
	"context"
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// New creates an idle player positioned before the first frame of t.
func New(t *trace.Trace, r Renderer, opts ...Option) *Player {
	p := &Player{
		trace:    t,
		renderer: r,
		state:    StateIdle,
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(logging.Component("player"), logging.Operation(t.Operation()))
	return p
}

// Trace returns the trace being played.
func (p *Player) Trace() *trace.Trace { return p.trace }

// Len returns the number of frames in the trace.
func (p *Player) Len() int { return p.trace.Len() }

// Cursor returns the index of the next frame to render.
func (p *Player) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// State returns the playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the frame on display. Before the first render it is the
// cleared view of frame 0.
func (p *Player) Current() (trace.Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentLocked()
}

func (p *Player) currentLocked() (trace.Frame, bool) {
	if p.hasShown {
		return p.shown, true
	}
	first, err := p.trace.Frame(0)
	if err != nil {
		return trace.Frame{}, false
	}
	return first.Cleared(), true
}

// Play starts automatic advancement: the frame at the cursor is rendered
// at once and every interval after that, until the trace is exhausted,
// ctx is cancelled or Pause is called. Playing a finished trace is a no-op.
func (p *Player) Play(ctx context.Context, interval time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StatePlaying {
		return ErrPlaying
	}
	if p.cursor >= p.trace.Len() {
		p.state = StateCompleted
		return nil
	}

	p.count("play")
	p.logger.Debug("playback started", logging.Cursor(p.cursor), logging.Duration("interval", interval))

	p.state = StatePlaying
	p.advanceLocked()
	if p.cursor >= p.trace.Len() {
		p.state = StateCompleted
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(ctx, interval, p.done)
	return nil
}

func (p *Player) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			if p.state == StatePlaying {
				p.state = StatePaused
			}
			p.mu.Unlock()
			return
		case <-ticker.C:
			if p.tick() {
				return
			}
		}
	}
}

// tick renders one frame while playing and reports whether the loop is over.
func (p *Player) tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePlaying {
		return true
	}
	p.advanceLocked()
	if p.cursor >= p.trace.Len() {
		p.state = StateCompleted
		p.logger.Debug("playback completed", logging.Frames(p.trace.Len()))
		return true
	}
	return false
}

// Pause halts automatic advancement and keeps the cursor. It returns once
// no further frame will be rendered by the playback loop.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.state != StatePlaying {
		p.mu.Unlock()
		return
	}
	p.state = StatePaused
	cancel, done := p.cancel, p.done
	p.count("pause")
	p.mu.Unlock()

	cancel()
	<-done
	p.logger.Debug("playback paused", logging.Cursor(p.Cursor()))
}

// Wait blocks until the current playback run stops, by completion, Pause
// or cancellation. It returns immediately when nothing is playing.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Step pauses any running playback and renders exactly one frame. It
// reports false, rendering nothing, when the trace is exhausted.
func (p *Player) Step() bool {
	p.Pause()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cursor >= p.trace.Len() {
		p.state = StateCompleted
		return false
	}
	p.count("step")
	p.advanceLocked()
	if p.cursor >= p.trace.Len() {
		p.state = StateCompleted
	} else {
		p.state = StatePaused
	}
	return true
}

// Reset stops playback, moves the cursor to 0 and renders the displayed
// structure with every tag back to default.
func (p *Player) Reset() {
	p.Pause()

	p.mu.Lock()
	defer p.mu.Unlock()

	cleared, ok := p.currentLocked()
	p.cursor = 0
	p.state = StateIdle
	p.count("reset")
	if !ok {
		p.hasShown = false
		return
	}
	p.shown = cleared.Cleared()
	p.hasShown = true
	if p.renderer != nil {
		p.renderer.Render(ResetIndex, p.shown)
	}
}

// advanceLocked renders the frame at the cursor and moves past it.
func (p *Player) advanceLocked() {
	f, err := p.trace.Frame(p.cursor)
	if err != nil {
		return
	}
	p.shown, p.hasShown = f, true
	if p.renderer != nil {
		p.renderer.Render(p.cursor, f)
	}
	if p.metrics != nil {
		p.metrics.RecordFrameRendered(string(p.trace.Kind()))
	}
	p.cursor++
}

func (p *Player) count(action string) {
	if p.metrics != nil {
		p.metrics.RecordPlayback(action)
	}
}
