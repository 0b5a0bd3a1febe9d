package visualization

import (
	"math/bits"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

// HierarchicalLayout arranges graph vertices in layers: sources (no
// incoming edge) first, then breadth-first along outgoing edges.
type HierarchicalLayout struct {
	config *LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &HierarchicalLayout{config: config}
}

func (hl *HierarchicalLayout) ComputeLayout(g *model.Graph) Positions {
	positions := make(Positions, len(g.Vertices))
	if len(g.Vertices) == 0 {
		return positions
	}

	incoming := make(map[string]int)
	for _, e := range g.Edges {
		incoming[e.To]++
	}
	var roots []string
	for _, v := range g.Vertices {
		if incoming[v.Key] == 0 {
			roots = append(roots, v.Key)
		}
	}
	if len(roots) == 0 {
		// No clear root, use first vertex
		roots = []string{g.Vertices[0].Key}
	}

	var levels [][]string
	visited := make(map[string]bool)
	for _, r := range roots {
		visited[r] = true
	}
	for current := roots; len(current) > 0; {
		levels = append(levels, current)
		var next []string
		for _, key := range current {
			for _, n := range g.Neighbors(key) {
				if !visited[n] {
					visited[n] = true
					next = append(next, n)
				}
			}
		}
		current = next
	}

	// Unreached vertices join the last level.
	for _, v := range g.Vertices {
		if !visited[v.Key] {
			levels[len(levels)-1] = append(levels[len(levels)-1], v.Key)
		}
	}

	cfg := hl.config
	levelHeight := (cfg.Height - 2*cfg.Padding) / float64(len(levels))
	for li, level := range levels {
		y := cfg.Padding + float64(li)*levelHeight + levelHeight/2
		xs := spread(len(level), cfg.Padding, cfg.Width-cfg.Padding)
		for i, key := range level {
			positions[g.Vertices[g.VertexIndex(key)].ID] = Position{X: xs[i], Y: y}
		}
	}
	return positions
}

// TreeLayout places tree nodes by in-order rank horizontally and depth
// vertically, so a search tree reads left to right in sorted order.
func TreeLayout(t *model.Tree, cfg *LayoutConfig) Positions {
	positions := make(Positions, t.Len())
	if t.Len() == 0 {
		return positions
	}

	height := t.Height()
	xs := spread(t.Len(), cfg.Padding, cfg.Width-cfg.Padding)
	levelHeight := (cfg.Height - 2*cfg.Padding) / float64(height)

	rank := 0
	var walk func(id model.ElementID, depth int)
	walk = func(id model.ElementID, depth int) {
		if id == model.NoElement {
			return
		}
		n, _ := t.Node(id)
		walk(n.Left, depth+1)
		positions[id] = Position{X: xs[rank], Y: cfg.Padding + float64(depth)*levelHeight + levelHeight/2}
		rank++
		walk(n.Right, depth+1)
	}
	walk(t.Root, 0)
	return positions
}

// HeapLayout places heap slot i on level floor(log2(i+1)), spreading each
// level across the full width the way a complete binary tree is drawn.
func HeapLayout(h *model.Heap, cfg *LayoutConfig) Positions {
	positions := make(Positions, h.Len())
	if h.Len() == 0 {
		return positions
	}

	levels := bits.Len(uint(h.Len()))
	levelHeight := (cfg.Height - 2*cfg.Padding) / float64(levels)
	width := cfg.Width - 2*cfg.Padding

	for i, item := range h.Items {
		level := bits.Len(uint(i+1)) - 1
		first := 1<<level - 1
		slots := float64(int(1) << level)
		positions[item.ID] = Position{
			X: cfg.Padding + width*(float64(i-first)+0.5)/slots,
			Y: cfg.Padding + float64(level)*levelHeight + levelHeight/2,
		}
	}
	return positions
}
