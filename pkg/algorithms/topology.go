package algorithms

import (
	"strings"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// TopologicalSort orders a directed graph with Kahn's algorithm so that
// every edge u->v has u before v. Vertices with no incoming edges are taken
// in vertex order. A cycle leaves some vertices unordered; they are tagged
// deleted and the operation fails with an invalid-input error.
func TopologicalSort(in *model.Graph) (*trace.Trace, error) {
	if !in.Directed {
		return nil, model.InvalidInputError("topologicalSort", model.KindGraph, "topological sort requires a directed graph")
	}
	g, rec := startGraph("topologicalSort", TopologicalSortListing, in)

	inDegree := make(map[string]int, len(g.Vertices))
	for _, e := range g.Edges {
		inDegree[e.To]++
	}
	rec.Record(g, 1)

	var queue []string
	for _, v := range g.Vertices {
		if inDegree[v.Key] == 0 {
			queue = append(queue, v.Key)
			g.SetVertexState(v.Key, model.StateQueued)
		}
	}
	rec.Record(g, 2)

	sorted := make([]string, 0, len(g.Vertices))
	for len(queue) > 0 {
		rec.Record(g, 3)
		u := queue[0]
		queue = queue[1:]
		sorted = append(sorted, u)
		g.SetVertexState(u, model.StateCurrent)
		rec.Recordf(g, 4, "Output %s", u)

		for _, v := range g.Neighbors(u) {
			g.SetEdgeState(u, v, model.StateTraversed)
			inDegree[v]--
			rec.Record(g, 6)
			if inDegree[v] == 0 {
				queue = append(queue, v)
				g.SetVertexState(v, model.StateQueued)
				rec.Record(g, 7)
			}
		}
		g.SetVertexState(u, model.StateVisited)
	}

	if len(sorted) != len(g.Vertices) {
		for _, v := range g.Vertices {
			if inDegree[v.Key] > 0 {
				g.SetVertexState(v.Key, model.StateDeleted)
			}
		}
		notice := "Graph contains a cycle, cannot sort topologically"
		rec.Recordf(g, 8, "%s", notice)
		err := model.NewError("topologicalSort").On(model.KindGraph).Notice("%s", notice).Cause(model.ErrInvalidInput).Err()
		return rec.Finish(in), err
	}

	rec.SetResult(sorted...)
	rec.Recordf(g, trace.NoLine, "Topological order: %s", strings.Join(sorted, ", "))
	return rec.Finish(g), nil
}

// IsDAG reports whether g is directed and free of cycles. It runs Kahn's
// count without recording frames.
func IsDAG(g *model.Graph) bool {
	if !g.Directed {
		return false
	}
	inDegree := make(map[string]int, len(g.Vertices))
	for _, e := range g.Edges {
		inDegree[e.To]++
	}
	var queue []string
	for _, v := range g.Vertices {
		if inDegree[v.Key] == 0 {
			queue = append(queue, v.Key)
		}
	}
	ordered := 0
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		ordered++
		for _, v := range g.Neighbors(u) {
			inDegree[v]--
			if inDegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}
	return ordered == len(g.Vertices)
}

// Components labels the weakly connected components of g, in vertex order of
// their first member. Each result entry lists one component's keys.
func Components(in *model.Graph) (*trace.Trace, error) {
	g, rec := startGraph("components", ComponentsListing, in)
	if len(g.Vertices) == 0 {
		rec.Recordf(g, 1, "Graph is empty")
		return rec.Finish(in), model.EmptyError("components", model.KindGraph, "Graph is empty")
	}

	labelled := make(map[string]bool, len(g.Vertices))
	var groups []string
	for _, s := range g.Vertices {
		rec.Record(g, 1)
		if labelled[s.Key] {
			continue
		}
		rec.Record(g, 2)

		var members []string
		labelled[s.Key] = true
		queue := []string{s.Key}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			members = append(members, u)
			g.SetVertexState(u, model.StateCurrent)
			rec.Record(g, 3)
			for _, v := range undirectedNeighbors(g, u) {
				if !labelled[v] {
					labelled[v] = true
					queue = append(queue, v)
				}
			}
			g.SetVertexState(u, model.StateVisited)
		}
		groups = append(groups, strings.Join(members, " "))
		rec.Recordf(g, 4, "Component %d: %s", len(groups), strings.Join(members, ", "))
	}

	g.ResetStates()
	rec.SetResult(groups...)
	rec.Recordf(g, trace.NoLine, "%d connected component(s)", len(groups))
	return rec.Finish(g), nil
}

// undirectedNeighbors lists targets of outgoing edges followed by sources of
// incoming edges.
func undirectedNeighbors(g *model.Graph, key string) []string {
	out := g.Neighbors(key)
	for _, e := range g.Edges {
		if e.To == key {
			out = append(out, e.From)
		}
	}
	return out
}
