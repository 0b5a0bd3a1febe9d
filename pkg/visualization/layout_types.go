package visualization

import "github.com/dd0wney/cluso-algoviz/pkg/model"

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       uint64  // Seed for the initial force-directed placement
}

// DefaultConfig returns the canvas used by the sample structures.
func DefaultConfig() *LayoutConfig {
	return &LayoutConfig{Width: 600, Height: 500, Iterations: 50, Padding: 50}
}

// Positions maps element ids to canvas coordinates.
type Positions map[model.ElementID]Position

// GraphLayout places the vertices of a graph.
type GraphLayout interface {
	ComputeLayout(g *model.Graph) Positions
}

// Node is one placed element of a visualization.
type Node struct {
	ID    model.ElementID   `json:"id"`
	Label string            `json:"label"`
	State model.VisualState `json:"state"`
	X     float64           `json:"x"`
	Y     float64           `json:"y"`
}

// Link connects two placed elements: a graph edge, a tree or heap
// parent/child relation, or a list next pointer.
type Link struct {
	From  model.ElementID   `json:"from"`
	To    model.ElementID   `json:"to"`
	State model.VisualState `json:"state,omitempty"`
}

// Visualization is a renderer-ready view of one structure snapshot.
type Visualization struct {
	Kind  model.Kind `json:"kind"`
	Nodes []Node     `json:"nodes"`
	Links []Link     `json:"links"`
}
