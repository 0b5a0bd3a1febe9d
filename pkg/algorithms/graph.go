package algorithms

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

func startGraph(op string, listing trace.Listing, in *model.Graph) (*model.Graph, *trace.Recorder) {
	g := in.Clone().(*model.Graph)
	g.ResetStates()
	rec := trace.NewRecorder(op, model.KindGraph, listing)
	rec.Record(g, 0)
	return g, rec
}

// AddVertex adds key at (x, y). An existing key is a duplicate notice.
func AddVertex(in *model.Graph, key string, x, y float64) (*trace.Trace, error) {
	g, rec := startGraph("addVertex", AddVertexListing, in)
	if err := g.AddVertex(key, x, y); err != nil {
		rec.Recordf(g, 1, "%s", model.NoticeOf(err))
		return rec.Finish(in), err
	}
	rec.Record(g, 1)
	g.SetVertexState(key, model.StateInserted)
	rec.Record(g, 2)
	g.ResetStates()
	rec.Recordf(g, trace.NoLine, "Added vertex %s", key)
	return rec.Finish(g), nil
}

// RemoveVertex removes key together with every incident edge.
func RemoveVertex(in *model.Graph, key string) (*trace.Trace, error) {
	g, rec := startGraph("removeVertex", RemoveVertexListing, in)
	if !g.HasVertex(key) {
		err := model.NotFoundError("removeVertex", model.KindGraph, key, fmt.Sprintf("Vertex %s not found", key))
		rec.Recordf(g, 1, "%s", model.NoticeOf(err))
		return rec.Finish(in), err
	}
	rec.Record(g, 1)
	g.SetVertexState(key, model.StateDeleted)
	for _, e := range g.Edges {
		if e.From == key || e.To == key {
			g.SetEdgeState(e.From, e.To, model.StateDeleted)
		}
	}
	rec.Record(g, 2)
	if err := g.RemoveVertex(key); err != nil {
		return rec.Finish(in), err
	}
	rec.Record(g, 3)
	rec.Recordf(g, trace.NoLine, "Removed vertex %s", key)
	return rec.Finish(g), nil
}

// AddEdge adds from->to (mirrored when undirected).
func AddEdge(in *model.Graph, from, to string) (*trace.Trace, error) {
	g, rec := startGraph("addEdge", AddEdgeListing, in)
	if err := g.AddEdge(from, to); err != nil {
		line := 1
		if model.IsDuplicate(err) {
			line = 2
		}
		rec.Recordf(g, line, "%s", model.NoticeOf(err))
		return rec.Finish(in), err
	}
	g.SetVertexState(from, model.StateHighlighted)
	g.SetVertexState(to, model.StateHighlighted)
	rec.Record(g, 1)
	g.SetEdgeState(from, to, model.StateHighlighted)
	rec.Record(g, 3)
	if !g.Directed {
		rec.Record(g, 4)
	}
	g.ResetStates()
	rec.Recordf(g, trace.NoLine, "Added edge %s", edgeLabel(g, from, to))
	return rec.Finish(g), nil
}

// RemoveEdge removes from->to (and its mirror when undirected).
func RemoveEdge(in *model.Graph, from, to string) (*trace.Trace, error) {
	g, rec := startGraph("removeEdge", RemoveEdgeListing, in)
	if !g.HasEdge(from, to) {
		err := model.NotFoundError("removeEdge", model.KindGraph, from+"->"+to, fmt.Sprintf("Edge %s -> %s not found", from, to))
		rec.Recordf(g, 1, "%s", model.NoticeOf(err))
		return rec.Finish(in), err
	}
	rec.Record(g, 1)
	g.SetEdgeState(from, to, model.StateDeleted)
	rec.Record(g, 2)
	label := edgeLabel(g, from, to)
	if err := g.RemoveEdge(from, to); err != nil {
		return rec.Finish(in), err
	}
	rec.Record(g, 3)
	rec.Recordf(g, trace.NoLine, "Removed edge %s", label)
	return rec.Finish(g), nil
}

// BFS explores the component reachable from start with a FIFO frontier.
// The visited set is seeded with start; neighbours expand in edge insertion
// order. Each visit frame names the vertex's hop level.
func BFS(in *model.Graph, start string) (*trace.Trace, error) {
	g, rec := startGraph("bfs", BFSListing, in)
	levels, err := Distances(in, start)
	if err != nil {
		return declineStart("bfs", g, rec, in, start)
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	g.SetVertexState(start, model.StateQueued)
	rec.Record(g, 1)

	var order []string
	for len(queue) > 0 {
		rec.Record(g, 2)
		u := queue[0]
		queue = queue[1:]
		g.SetVertexState(u, model.StateCurrent)
		order = append(order, u)
		rec.Recordf(g, 3, "Visiting %s (level %d)", u, levels[u])

		for _, v := range g.Neighbors(u) {
			prev := g.EdgeState(u, v)
			g.SetEdgeState(u, v, model.StateHighlighted)
			rec.Record(g, 4)
			if visited[v] {
				g.SetEdgeState(u, v, prev)
				rec.Record(g, 5)
				continue
			}
			visited[v] = true
			queue = append(queue, v)
			g.SetVertexState(v, model.StateQueued)
			g.SetEdgeState(u, v, model.StateTraversed)
			rec.Record(g, 7)
		}
		g.SetVertexState(u, model.StateVisited)
		rec.Record(g, 8)
	}

	rec.SetResult(order...)
	rec.Recordf(g, trace.NoLine, "BFS traversal from %q: %s", start, strings.Join(order, " → "))
	return rec.Finish(g), nil
}

// DFS explores the component reachable from start with a LIFO frontier.
// Neighbours are pushed in reverse adjacency order so they pop in adjacency
// order. The visited set starts empty: a vertex is marked only when popped
// unvisited, so it can sit on the stack more than once.
func DFS(in *model.Graph, start string) (*trace.Trace, error) {
	g, rec := startGraph("dfs", DFSListing, in)
	if !g.HasVertex(start) {
		return declineStart("dfs", g, rec, in, start)
	}

	visited := make(map[string]bool)
	stack := []string{start}
	g.SetVertexState(start, model.StateStacked)
	rec.Record(g, 1)

	var order []string
	for len(stack) > 0 {
		rec.Record(g, 2)
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g.SetVertexState(u, model.StateCurrent)
		rec.Record(g, 3)

		if visited[u] {
			g.SetVertexState(u, model.StateVisited)
			rec.Recordf(g, 4, "%s already visited", u)
			continue
		}
		visited[u] = true
		order = append(order, u)
		rec.Recordf(g, 5, "Visiting %s", u)

		neighbors := g.Neighbors(u)
		rec.Record(g, 6)
		for i := len(neighbors) - 1; i >= 0; i-- {
			v := neighbors[i]
			if visited[v] {
				continue
			}
			stack = append(stack, v)
			g.SetVertexState(v, model.StateStacked)
			g.SetEdgeState(u, v, model.StateTraversed)
			rec.Record(g, 7)
		}
		g.SetVertexState(u, model.StateVisited)
	}

	rec.SetResult(order...)
	rec.Recordf(g, trace.NoLine, "DFS traversal from %q: %s", start, strings.Join(order, " → "))
	return rec.Finish(g), nil
}

func declineStart(op string, g *model.Graph, rec *trace.Recorder, in *model.Graph, start string) (*trace.Trace, error) {
	err := model.NotFoundError(op, model.KindGraph, start, fmt.Sprintf("Vertex %s not found", start))
	rec.Recordf(g, trace.NoLine, "%s", model.NoticeOf(err))
	return rec.Finish(in), err
}

func edgeLabel(g *model.Graph, from, to string) string {
	if g.Directed {
		return from + " -> " + to
	}
	return from + " - " + to
}
