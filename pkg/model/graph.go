package model

import "fmt"

// Vertex is a graph vertex identified by a user-chosen key.
type Vertex struct {
	ID    ElementID   `json:"id"`
	Key   string      `json:"key"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	State VisualState `json:"state"`
}

// Edge references its endpoints by vertex key and never owns them.
type Edge struct {
	ID    ElementID   `json:"id"`
	From  string      `json:"from"`
	To    string      `json:"to"`
	State VisualState `json:"state"`
}

// Graph holds vertices and an explicit edge list. An undirected edge is
// stored as two directed edges. Adjacency follows edge insertion order.
type Graph struct {
	Directed bool     `json:"directed"`
	Vertices []Vertex `json:"vertices"`
	Edges    []Edge   `json:"edges"`
	ids      idSeq
}

// NewGraph creates an empty graph.
func NewGraph(directed bool) *Graph {
	return &Graph{Directed: directed}
}

func (g *Graph) Kind() Kind { return KindGraph }
func (g *Graph) Len() int   { return len(g.Vertices) }

func (g *Graph) Clone() Structure {
	c := *g
	c.Vertices = append([]Vertex(nil), g.Vertices...)
	c.Edges = append([]Edge(nil), g.Edges...)
	return &c
}

// Elements lists vertices followed by edges.
func (g *Graph) Elements() []Element {
	out := make([]Element, 0, len(g.Vertices)+len(g.Edges))
	for _, v := range g.Vertices {
		out = append(out, Element{ID: v.ID, Label: v.Key, State: v.State})
	}
	for _, e := range g.Edges {
		out = append(out, Element{ID: e.ID, Label: e.From + "->" + e.To, State: e.State})
	}
	return out
}

func (g *Graph) ApplyTag(pred func(Element) bool, tag VisualState) int {
	n := 0
	for i, v := range g.Vertices {
		if pred(Element{ID: v.ID, Label: v.Key, State: v.State}) {
			g.Vertices[i].State = tag
			n++
		}
	}
	for i, e := range g.Edges {
		if pred(Element{ID: e.ID, Label: e.From + "->" + e.To, State: e.State}) {
			g.Edges[i].State = tag
			n++
		}
	}
	return n
}

func (g *Graph) ResetStates() { g.ApplyTag(All, StateDefault) }

// VertexIndex returns the slice index of key, or -1.
func (g *Graph) VertexIndex(key string) int {
	for i, v := range g.Vertices {
		if v.Key == key {
			return i
		}
	}
	return -1
}

// EdgeIndex returns the slice index of the directed edge from->to, or -1.
func (g *Graph) EdgeIndex(from, to string) int {
	for i, e := range g.Edges {
		if e.From == from && e.To == to {
			return i
		}
	}
	return -1
}

// HasVertex reports whether key exists.
func (g *Graph) HasVertex(key string) bool { return g.VertexIndex(key) >= 0 }

// HasEdge reports whether the edge from->to exists.
func (g *Graph) HasEdge(from, to string) bool { return g.EdgeIndex(from, to) >= 0 }

// AddVertex adds a vertex at (x, y).
func (g *Graph) AddVertex(key string, x, y float64) error {
	if key == "" {
		return InvalidInputError("addVertex", KindGraph, "vertex id is required")
	}
	if g.HasVertex(key) {
		return DuplicateError("addVertex", KindGraph, key, fmt.Sprintf("Vertex %s already exists", key))
	}
	g.Vertices = append(g.Vertices, Vertex{ID: g.ids.next(), Key: key, X: x, Y: y, State: StateDefault})
	return nil
}

// RemoveVertex removes key and every edge touching it.
func (g *Graph) RemoveVertex(key string) error {
	idx := g.VertexIndex(key)
	if idx < 0 {
		return NotFoundError("removeVertex", KindGraph, key, fmt.Sprintf("Vertex %s not found", key))
	}
	g.Vertices = append(g.Vertices[:idx:idx], g.Vertices[idx+1:]...)
	kept := g.Edges[:0:0]
	for _, e := range g.Edges {
		if e.From != key && e.To != key {
			kept = append(kept, e)
		}
	}
	g.Edges = kept
	return nil
}

// AddEdge adds from->to, plus to->from when the graph is undirected.
func (g *Graph) AddEdge(from, to string) error {
	if !g.HasVertex(from) || !g.HasVertex(to) {
		return NotFoundError("addEdge", KindGraph, from+"->"+to, "Both vertices must exist")
	}
	if g.HasEdge(from, to) {
		return DuplicateError("addEdge", KindGraph, from+"->"+to, fmt.Sprintf("Edge %s -> %s already exists", from, to))
	}
	g.Edges = append(g.Edges, Edge{ID: g.ids.next(), From: from, To: to, State: StateDefault})
	if !g.Directed && from != to && !g.HasEdge(to, from) {
		g.Edges = append(g.Edges, Edge{ID: g.ids.next(), From: to, To: from, State: StateDefault})
	}
	return nil
}

// RemoveEdge removes from->to, plus its mirror when the graph is undirected.
func (g *Graph) RemoveEdge(from, to string) error {
	if !g.HasEdge(from, to) {
		return NotFoundError("removeEdge", KindGraph, from+"->"+to, fmt.Sprintf("Edge %s -> %s not found", from, to))
	}
	kept := g.Edges[:0:0]
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			continue
		}
		if !g.Directed && e.From == to && e.To == from {
			continue
		}
		kept = append(kept, e)
	}
	g.Edges = kept
	return nil
}

// Neighbors returns the targets of key's outgoing edges in insertion order.
func (g *Graph) Neighbors(key string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.From == key {
			out = append(out, e.To)
		}
	}
	return out
}

// SetVertexState tags the vertex key.
func (g *Graph) SetVertexState(key string, s VisualState) {
	if i := g.VertexIndex(key); i >= 0 {
		g.Vertices[i].State = s
	}
}

// VertexState returns the tag of key.
func (g *Graph) VertexState(key string) VisualState {
	if i := g.VertexIndex(key); i >= 0 {
		return g.Vertices[i].State
	}
	return StateDefault
}

// SetEdgeState tags the edge from->to, and its mirror in an undirected graph.
func (g *Graph) SetEdgeState(from, to string, s VisualState) {
	if i := g.EdgeIndex(from, to); i >= 0 {
		g.Edges[i].State = s
	}
	if !g.Directed {
		if i := g.EdgeIndex(to, from); i >= 0 {
			g.Edges[i].State = s
		}
	}
}

// EdgeState returns the tag of from->to.
func (g *Graph) EdgeState(from, to string) VisualState {
	if i := g.EdgeIndex(from, to); i >= 0 {
		return g.Edges[i].State
	}
	return StateDefault
}
