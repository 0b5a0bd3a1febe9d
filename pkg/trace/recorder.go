package trace

import (
	"fmt"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

// Recorder appends frames for one engine invocation. Every recorded
// structure is cloned, so later mutation by the engine cannot reach frames
// already recorded.
type Recorder struct {
	t        *Trace
	finished bool
}

// NewRecorder starts a trace for op on a structure of the given kind.
func NewRecorder(op string, kind model.Kind, listing Listing) *Recorder {
	return &Recorder{t: &Trace{operation: op, kind: kind, listing: listing}}
}

// Record appends a frame for s highlighting line (or NoLine).
func (r *Recorder) Record(s model.Structure, line int) {
	r.append(s, line, "")
}

// Recordf appends a frame with a message.
func (r *Recorder) Recordf(s model.Structure, line int, format string, args ...any) {
	r.append(s, line, fmt.Sprintf(format, args...))
}

func (r *Recorder) append(s model.Structure, line int, msg string) {
	if r.finished {
		panic("trace: record after Finish")
	}
	r.t.frames = append(r.t.frames, Frame{structure: s.Clone(), line: line, message: msg})
}

// SetResult stores the operation's output sequence.
func (r *Recorder) SetResult(values ...string) {
	r.t.result = append([]string(nil), values...)
}

// Len returns the number of frames recorded so far.
func (r *Recorder) Len() int { return len(r.t.frames) }

// Finish seals the trace. final is the structure the operation leaves
// behind; it is cloned like any frame.
func (r *Recorder) Finish(final model.Structure) *Trace {
	r.finished = true
	if final != nil {
		r.t.final = final.Clone()
	}
	return r.t
}
