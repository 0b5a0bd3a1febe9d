package trace

import "github.com/dd0wney/cluso-algoviz/pkg/model"

// NoLine marks a frame that highlights no pseudocode line.
const NoLine = -1

// Listing is the pseudocode shown next to an animation. Frames point into it
// by line index.
type Listing struct {
	Name  string   `json:"name"`
	Lines []string `json:"lines"`
}

// Line returns the text of line i, or "" when out of range.
func (l Listing) Line(i int) string {
	if i < 0 || i >= len(l.Lines) {
		return ""
	}
	return l.Lines[i]
}

// Frame is one immutable recorded snapshot.
type Frame struct {
	structure model.Structure
	line      int
	message   string
}

// Trace is the ordered frame sequence of one completed engine invocation.
// It is never modified after Finish returns it.
type Trace struct {
	operation string
	kind      model.Kind
	listing   Listing
	frames    []Frame
	result    []string
	final     model.Structure
}
