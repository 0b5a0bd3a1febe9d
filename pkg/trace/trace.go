package trace

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

// Structure returns a copy of the frame's structure snapshot.
func (f Frame) Structure() model.Structure {
	if f.structure == nil {
		return nil
	}
	return f.structure.Clone()
}

// Elements returns the renderer view of the snapshot.
func (f Frame) Elements() []model.Element {
	if f.structure == nil {
		return nil
	}
	return f.structure.Elements()
}

// HighlightedLine returns the listing line index, if any.
func (f Frame) HighlightedLine() (int, bool) {
	return f.line, f.line != NoLine
}

// Message returns the frame message, if any.
func (f Frame) Message() (string, bool) {
	return f.message, f.message != ""
}

// StateOf returns the tag of element id in this frame.
func (f Frame) StateOf(id model.ElementID) (model.VisualState, bool) {
	for _, e := range f.Elements() {
		if e.ID == id {
			return e.State, true
		}
	}
	return "", false
}

// Cleared returns a copy of the frame with every tag reset to default and
// no line or message.
func (f Frame) Cleared() Frame {
	c := Frame{line: NoLine}
	if f.structure != nil {
		c.structure = f.structure.Clone()
		c.structure.ResetStates()
	}
	return c
}

// MarshalJSON emits {kind, structure, highlightedLine, message} with nulls
// for absent line and message.
func (f Frame) MarshalJSON() ([]byte, error) {
	var line *int
	if l, ok := f.HighlightedLine(); ok {
		line = &l
	}
	var msg *string
	if m, ok := f.Message(); ok {
		msg = &m
	}
	var kind model.Kind
	if f.structure != nil {
		kind = f.structure.Kind()
	}
	return json.Marshal(struct {
		Kind            model.Kind      `json:"kind"`
		Structure       model.Structure `json:"structure"`
		HighlightedLine *int            `json:"highlightedLine"`
		Message         *string         `json:"message"`
	}{kind, f.structure, line, msg})
}

// Operation returns the engine operation name.
func (t *Trace) Operation() string { return t.operation }

// Kind returns the structure family the trace animates.
func (t *Trace) Kind() model.Kind { return t.kind }

// Listing returns the pseudocode the frames point into.
func (t *Trace) Listing() Listing { return t.listing }

// Len returns the number of frames.
func (t *Trace) Len() int { return len(t.frames) }

// Frame returns frame i.
func (t *Trace) Frame(i int) (Frame, error) {
	if i < 0 || i >= len(t.frames) {
		return Frame{}, fmt.Errorf("frame %d out of range [0,%d)", i, len(t.frames))
	}
	return t.frames[i], nil
}

// Last returns the final frame.
func (t *Trace) Last() (Frame, bool) {
	if len(t.frames) == 0 {
		return Frame{}, false
	}
	return t.frames[len(t.frames)-1], true
}

// All iterates frames in recorded order.
func (t *Trace) All() iter.Seq2[int, Frame] {
	return func(yield func(int, Frame) bool) {
		for i, f := range t.frames {
			if !yield(i, f) {
				return
			}
		}
	}
}

// Result returns the operation's output sequence (traversal order, sorted
// values, extracted heap values), if it has one.
func (t *Trace) Result() []string {
	return append([]string(nil), t.result...)
}

// Final returns a copy of the structure as the operation left it.
func (t *Trace) Final() model.Structure {
	if t.final == nil {
		return nil
	}
	return t.final.Clone()
}

// MarshalJSON emits the trace with all frames.
func (t *Trace) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Operation string     `json:"operation"`
		Kind      model.Kind `json:"kind"`
		Listing   Listing    `json:"listing"`
		Frames    []Frame    `json:"frames"`
		Result    []string   `json:"result,omitempty"`
	}{t.operation, t.kind, t.listing, t.frames, t.result})
}
