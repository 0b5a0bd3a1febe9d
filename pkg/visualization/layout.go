package visualization

import (
	"encoding/json"
	"fmt"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

// ApplyLayout moves every vertex of g to the position l computes for it.
func ApplyLayout(g *model.Graph, l GraphLayout) {
	positions := l.ComputeLayout(g)
	for i, v := range g.Vertices {
		if p, ok := positions[v.ID]; ok {
			g.Vertices[i].X, g.Vertices[i].Y = p.X, p.Y
		}
	}
}

// Build places the elements of s on the canvas. Graph vertices keep their
// stored coordinates; trees and heaps are drawn level by level; sequences
// are drawn as a row, or a column for stacks.
func Build(s model.Structure, cfg *LayoutConfig) (*Visualization, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	v := &Visualization{Kind: s.Kind(), Nodes: []Node{}, Links: []Link{}}

	switch st := s.(type) {
	case *model.Graph:
		byKey := make(map[string]model.ElementID, len(st.Vertices))
		for _, vx := range st.Vertices {
			byKey[vx.Key] = vx.ID
			v.Nodes = append(v.Nodes, Node{ID: vx.ID, Label: vx.Key, State: vx.State, X: vx.X, Y: vx.Y})
		}
		for _, e := range st.Edges {
			v.Links = append(v.Links, Link{From: byKey[e.From], To: byKey[e.To], State: e.State})
		}

	case *model.Tree:
		place(v, st.Elements(), TreeLayout(st, cfg))
		for _, id := range st.LevelOrder() {
			n, _ := st.Node(id)
			for _, child := range []model.ElementID{n.Left, n.Right} {
				if child != model.NoElement {
					v.Links = append(v.Links, Link{From: id, To: child})
				}
			}
		}

	case *model.Heap:
		place(v, st.Elements(), HeapLayout(st, cfg))
		for i := 1; i < len(st.Items); i++ {
			v.Links = append(v.Links, Link{From: st.Items[model.HeapParent(i)].ID, To: st.Items[i].ID})
		}

	case *model.LinkedList:
		elems := st.Elements()
		place(v, elems, row(elems, cfg, false))
		for _, id := range st.IDs() {
			n, _ := st.Node(id)
			if n.Next != model.NoElement {
				v.Links = append(v.Links, Link{From: id, To: n.Next})
			}
			if st.Doubly && n.Prev != model.NoElement {
				v.Links = append(v.Links, Link{From: id, To: n.Prev})
			}
		}

	case *model.Stack:
		elems := st.Elements()
		place(v, elems, row(elems, cfg, true))

	case *model.Array, *model.Queue:
		elems := s.Elements()
		place(v, elems, row(elems, cfg, false))

	default:
		return nil, fmt.Errorf("no layout for structure %q", s.Kind())
	}
	return v, nil
}

func place(v *Visualization, elems []model.Element, positions Positions) {
	for _, e := range elems {
		p := positions[e.ID]
		v.Nodes = append(v.Nodes, Node{ID: e.ID, Label: e.Label, State: e.State, X: p.X, Y: p.Y})
	}
}

// row lays elements out left to right, or bottom to top when vertical.
func row(elems []model.Element, cfg *LayoutConfig, vertical bool) Positions {
	positions := make(Positions, len(elems))
	if vertical {
		ys := spread(len(elems), cfg.Padding, cfg.Height-cfg.Padding)
		for i, e := range elems {
			positions[e.ID] = Position{X: cfg.Width / 2, Y: ys[len(ys)-1-i]}
		}
		return positions
	}
	xs := spread(len(elems), cfg.Padding, cfg.Width-cfg.Padding)
	for i, e := range elems {
		positions[e.ID] = Position{X: xs[i], Y: cfg.Height / 2}
	}
	return positions
}

// ExportJSON exports the visualization to JSON
func (v *Visualization) ExportJSON() ([]byte, error) {
	return json.Marshal(v)
}
