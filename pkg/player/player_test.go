package player

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dd0wney/cluso-algoviz/pkg/algorithms"
	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// collector records every Render call.
type collector struct {
	mu      sync.Mutex
	indices []int
	frames  []trace.Frame
}

func (c *collector) Render(index int, f trace.Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indices = append(c.indices, index)
	c.frames = append(c.frames, f)
}

func (c *collector) seen() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.indices)
}

func (c *collector) last() trace.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames[len(c.frames)-1]
}

func bubbleTrace(t *testing.T, values ...int) *trace.Trace {
	t.Helper()
	tr, err := algorithms.Sort(algorithms.SortBubble, model.NewArray(values...))
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	return tr
}

func ascending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestDelayForSpeed(t *testing.T) {
	tests := []struct {
		speed int
		want  time.Duration
	}{
		{1, 991 * time.Millisecond},
		{50, 550 * time.Millisecond},
		{100, 100 * time.Millisecond},
		{0, 991 * time.Millisecond},
		{500, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := DelayForSpeed(tt.speed); got != tt.want {
			t.Errorf("DelayForSpeed(%d) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestStep_VisitsEveryFrameOnce(t *testing.T) {
	tr := bubbleTrace(t, 5, 3, 1, 4, 2)
	c := &collector{}
	p := New(tr, c)

	if p.State() != StateIdle || p.Cursor() != 0 {
		t.Fatalf("new player: state %s cursor %d", p.State(), p.Cursor())
	}
	for p.Step() {
	}
	if !slices.Equal(c.seen(), ascending(tr.Len())) {
		t.Errorf("rendered %v, want 0..%d", c.seen(), tr.Len()-1)
	}
	if p.Cursor() != tr.Len() {
		t.Errorf("Cursor() = %d, want %d", p.Cursor(), tr.Len())
	}
	if p.State() != StateCompleted {
		t.Errorf("State() = %s, want completed", p.State())
	}
	if p.Step() {
		t.Error("Step at the end should be a no-op")
	}
	if len(c.seen()) != tr.Len() {
		t.Error("Step at the end rendered a frame")
	}
}

func TestStep_FinalFrameIsSorted(t *testing.T) {
	c := &collector{}
	p := New(bubbleTrace(t, 5, 3, 1, 4, 2), c)
	for p.Step() {
	}
	cur, ok := p.Current()
	if !ok {
		t.Fatal("Current() reported no frame")
	}
	arr := cur.Structure().(*model.Array)
	if !slices.Equal(arr.Values(), []int{1, 2, 3, 4, 5}) {
		t.Errorf("final values = %v", arr.Values())
	}
	for _, e := range cur.Elements() {
		if e.State != model.StateSorted {
			t.Errorf("element %s state = %s, want sorted", e.Label, e.State)
		}
	}
}

func TestReset(t *testing.T) {
	c := &collector{}
	p := New(bubbleTrace(t, 3, 1, 2), c)
	p.Step()
	p.Step()
	p.Step()

	p.Reset()
	if p.Cursor() != 0 {
		t.Errorf("Cursor() after Reset = %d", p.Cursor())
	}
	if p.State() != StateIdle {
		t.Errorf("State() after Reset = %s", p.State())
	}
	seen := c.seen()
	if seen[len(seen)-1] != ResetIndex {
		t.Errorf("Reset rendered index %d, want %d", seen[len(seen)-1], ResetIndex)
	}
	for _, e := range c.last().Elements() {
		if e.State != model.StateDefault {
			t.Errorf("element %s state = %s after Reset", e.Label, e.State)
		}
	}

	// Replay starts from frame 0 again.
	p.Step()
	if got := c.seen(); got[len(got)-1] != 0 {
		t.Errorf("first step after Reset rendered %d", got[len(got)-1])
	}
}

func TestCurrent_BeforeFirstRender(t *testing.T) {
	arr := model.NewArray(2, 1)
	p := New(bubbleTrace(t, 2, 1), nil)
	cur, ok := p.Current()
	if !ok {
		t.Fatal("Current() on a fresh player should show frame 0")
	}
	if cur.Structure().Len() != arr.Len() {
		t.Errorf("Current() shows %d elements", cur.Structure().Len())
	}
	if _, ok := cur.Message(); ok {
		t.Error("cleared view should carry no message")
	}
}

func TestPlay_RunsToCompletion(t *testing.T) {
	tr := bubbleTrace(t, 4, 3, 2, 1)
	c := &collector{}
	p := New(tr, c)

	if err := p.Play(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("Play: %v", err)
	}
	p.Wait()

	if p.State() != StateCompleted {
		t.Errorf("State() = %s, want completed", p.State())
	}
	if !slices.Equal(c.seen(), ascending(tr.Len())) {
		t.Errorf("rendered %v, want every frame in order", c.seen())
	}
	if err := p.Play(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Play on a finished trace: %v", err)
	}
	if len(c.seen()) != tr.Len() {
		t.Error("Play on a finished trace rendered frames")
	}
}

func TestPlay_PauseKeepsCursor(t *testing.T) {
	tr := bubbleTrace(t, 9, 8, 7, 6, 5, 4, 3, 2, 1)
	c := &collector{}
	p := New(tr, c)

	if err := p.Play(context.Background(), time.Hour); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := p.Play(context.Background(), time.Hour); !errors.Is(err, ErrPlaying) {
		t.Errorf("second Play error = %v, want ErrPlaying", err)
	}
	p.Pause()

	if p.State() != StatePaused {
		t.Errorf("State() = %s, want paused", p.State())
	}
	// Play renders the cursor frame at once; the hour-long tick never fires.
	if p.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", p.Cursor())
	}
	rendered := len(c.seen())

	p.Step()
	if got := c.seen(); len(got) != rendered+1 || got[len(got)-1] != 1 {
		t.Errorf("Step after Pause rendered %v", got)
	}
}

func TestPlay_ContextCancelPauses(t *testing.T) {
	p := New(bubbleTrace(t, 3, 2, 1), &collector{})
	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Play(ctx, time.Hour); err != nil {
		t.Fatalf("Play: %v", err)
	}
	cancel()
	p.Wait()
	if p.State() != StatePaused {
		t.Errorf("State() = %s, want paused", p.State())
	}
}

func TestPlayer_Metrics(t *testing.T) {
	reg := metrics.NewRegistry()
	tr := bubbleTrace(t, 2, 1)
	p := New(tr, nil, WithMetrics(reg))
	for p.Step() {
	}
	p.Reset()

	if got := testutil.ToFloat64(reg.FramesRenderedTotal.WithLabelValues("array")); int(got) != tr.Len() {
		t.Errorf("frames rendered = %v, want %d", got, tr.Len())
	}
	if got := testutil.ToFloat64(reg.PlaybacksTotal.WithLabelValues("reset")); got != 1 {
		t.Errorf("reset count = %v, want 1", got)
	}
}

func TestPlayer_MonotonicReplayProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("step visits every frame once in order; reset returns to 0 with default tags", prop.ForAll(
		func(values []int, stopAt int) bool {
			tr, err := algorithms.Sort(algorithms.SortInsertion, model.NewArray(values...))
			if err != nil {
				return false
			}
			c := &collector{}
			p := New(tr, c)

			// Partial run, reset, then a full run.
			for i := 0; i < stopAt && p.Step(); i++ {
			}
			p.Reset()
			if p.Cursor() != 0 {
				return false
			}
			for _, e := range c.last().Elements() {
				if e.State != model.StateDefault {
					return false
				}
			}

			c.indices, c.frames = nil, nil
			for want := 1; p.Step(); want++ {
				if p.Cursor() != want {
					return false
				}
			}
			return slices.Equal(c.seen(), ascending(tr.Len()))
		},
		gen.SliceOf(gen.IntRange(-20, 20)),
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}
