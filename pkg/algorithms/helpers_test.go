package algorithms

import (
	"slices"
	"testing"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// lastFrame returns the final frame of tr, failing the test when there is none.
func lastFrame(t *testing.T, tr *trace.Trace) trace.Frame {
	t.Helper()
	if tr == nil {
		t.Fatal("nil trace")
	}
	f, ok := tr.Last()
	if !ok {
		t.Fatal("trace has no frames")
	}
	return f
}

// statesByLabel maps element labels to their tag in f. Labels must be unique.
func statesByLabel(f trace.Frame) map[string]model.VisualState {
	out := make(map[string]model.VisualState)
	for _, e := range f.Elements() {
		out[e.Label] = e.State
	}
	return out
}

// arrayValues extracts array payloads from a frame.
func arrayValues(t *testing.T, f trace.Frame) []int {
	t.Helper()
	arr, ok := f.Structure().(*model.Array)
	if !ok {
		t.Fatalf("frame structure is %T, want *model.Array", f.Structure())
	}
	return arr.Values()
}

func sortedCopy(values []int) []int {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}

func messageOf(f trace.Frame) string {
	m, _ := f.Message()
	return m
}
