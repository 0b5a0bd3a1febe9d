package algorithms

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

func TestRun_Dispatch(t *testing.T) {
	tests := []struct {
		name   string
		in     model.Structure
		op     string
		params Params
		result []string
	}{
		{"bubble", model.NewArray(3, 1, 2), SortBubble, Params{}, []string{"1", "2", "3"}},
		{"pop", model.NewStack("a", "b"), "pop", Params{}, []string{"b"}},
		{"dequeue", model.NewQueue("a", "b"), "dequeue", Params{}, []string{"a"}},
		{"bst search", model.NewBST(2, 1, 3), "search", Params{Value: 3}, []string{"2", "3"}},
		{"preorder", model.NewBinaryTree(1, 2, 3), PreOrder, Params{}, []string{"1", "2", "3"}},
		{"bfs", model.SampleGraph(true), "bfs", Params{Vertex: "D"}, []string{"D", "E", "F"}},
		{"peek", model.NewHeap(model.MaxHeap, 9, 4), "peek", Params{}, []string{"9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Run(tt.in, tt.op, tt.params)
			if err != nil {
				t.Fatalf("Run(%s) error: %v", tt.op, err)
			}
			if tr.Kind() != tt.in.Kind() {
				t.Errorf("trace kind = %s, want %s", tr.Kind(), tt.in.Kind())
			}
			if got := tr.Result(); !slices.Equal(got, tt.result) {
				t.Errorf("Result() = %v, want %v", got, tt.result)
			}
		})
	}
}

func TestRun_UnknownOperation(t *testing.T) {
	if _, err := Run(model.NewStack(), "enqueue", Params{}); !model.IsInvalidInput(err) {
		t.Errorf("error = %v, want invalid input", err)
	}
	if _, err := Run(nil, "pop", Params{}); !model.IsInvalidInput(err) {
		t.Errorf("nil structure error = %v", err)
	}
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	for _, kind := range model.Kinds() {
		var in model.Structure
		switch kind {
		case model.KindArray:
			in = model.NewArray(4, 2, 9)
		case model.KindHeap:
			in = model.NewHeap(model.MaxHeap, 4, 2, 9)
		case model.KindStack:
			in = model.NewStack("a", "b")
		case model.KindQueue:
			in = model.NewQueue("a", "b")
		default:
			in = model.Sample(kind, nil)
		}
		before := jsonOf(t, in)
		for _, spec := range Operations(kind) {
			p := Params{Value: 7, Key: 20, Position: 1, Item: "x", Vertex: "A", From: "A", To: "C"}
			_, _ = Run(in, spec.Name, p)
			after := jsonOf(t, in)
			if before != after {
				t.Errorf("%s %s mutated its input", kind, spec.Name)
			}
		}
	}
}

func TestOperations_Catalog(t *testing.T) {
	for _, kind := range model.Kinds() {
		ops := Operations(kind)
		if len(ops) == 0 {
			t.Errorf("no operations registered for %s", kind)
		}
		for _, spec := range ops {
			if spec.Listing.Name == "" || len(spec.Listing.Lines) == 0 {
				t.Errorf("%s %s has no listing", kind, spec.Name)
			}
			if _, ok := Lookup(kind, spec.Name); !ok {
				t.Errorf("Lookup(%s, %s) failed", kind, spec.Name)
			}
		}
	}
}

func jsonOf(t *testing.T, s model.Structure) string {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal %s: %v", s.Kind(), err)
	}
	return string(b)
}
