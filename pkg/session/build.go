package session

import (
	"math/rand/v2"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/validation"
	"github.com/dd0wney/cluso-algoviz/pkg/visualization"
)

// Build constructs the initial structure described by req. Sample and
// random requests use the built-in data sets; otherwise the structure is
// built from Values, Items or Vertices/Edges. Heaps satisfy the heap
// property unless Unbuilt asks for the values in slot order.
func Build(req CreateRequest, layout *visualization.LayoutConfig) (model.Structure, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	if layout == nil {
		layout = visualization.DefaultConfig()
	}

	kind := model.Kind(req.Kind)
	order := model.Order(validation.DefaultOr(req.Order, string(model.MaxHeap)))

	if req.Sample || req.Random {
		rng := newRand(req.Seed)
		switch kind {
		case model.KindLinkedList:
			return model.SampleList(req.Doubly), nil
		case model.KindGraph:
			return model.SampleGraph(req.Directed), nil
		case model.KindHeap:
			return model.RandomHeap(rng, order), nil
		default:
			return model.Sample(kind, rng), nil
		}
	}

	switch kind {
	case model.KindArray:
		return model.NewArray(req.Values...), nil
	case model.KindStack:
		return model.NewStack(req.Items...), nil
	case model.KindQueue:
		return model.NewQueue(req.Items...), nil
	case model.KindLinkedList:
		return model.NewLinkedList(req.Doubly, req.Values...), nil
	case model.KindBST:
		return model.NewBST(req.Values...), nil
	case model.KindBinaryTree:
		return model.NewBinaryTree(req.Values...), nil
	case model.KindHeap:
		if req.Unbuilt {
			return model.NewHeap(order, req.Values...), nil
		}
		return model.NewBuiltHeap(order, req.Values...), nil
	case model.KindGraph:
		return buildGraph(req, layout)
	}
	return nil, model.InvalidInputError("create", kind, "unknown structure %q", req.Kind)
}

func buildGraph(req CreateRequest, layout *visualization.LayoutConfig) (*model.Graph, error) {
	g := model.NewGraph(req.Directed)
	for _, key := range req.Vertices {
		if err := g.AddVertex(key, 0, 0); err != nil {
			return nil, err
		}
	}
	for _, e := range req.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil && !model.IsDuplicate(err) {
			return nil, err
		}
	}
	cfg := *layout
	visualization.ApplyLayout(g, visualization.NewCircularLayout(&cfg))
	return g, nil
}

// nextVertexPosition is where a vertex appended to g lands on the circle
// the current vertices occupy.
func nextVertexPosition(g *model.Graph, key string, layout *visualization.LayoutConfig) visualization.Position {
	trial := g.Clone().(*model.Graph)
	if err := trial.AddVertex(key, 0, 0); err != nil {
		return visualization.Position{X: layout.Width / 2, Y: layout.Height / 2}
	}
	cfg := *layout
	positions := visualization.NewCircularLayout(&cfg).ComputeLayout(trial)
	return positions[trial.Vertices[len(trial.Vertices)-1].ID]
}

func newRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
