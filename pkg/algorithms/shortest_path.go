package algorithms

import (
	"container/list"
	"fmt"
	"slices"
	"strings"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// ShortestPath finds a minimum-hop path from start to end with BFS. The
// path's vertices end tagged found and its edges traversed. When end is
// unreachable the trace says so and the result is empty.
func ShortestPath(in *model.Graph, start, end string) (*trace.Trace, error) {
	g, rec := startGraph("shortestPath", ShortestPathListing, in)
	for _, k := range []string{start, end} {
		if !g.HasVertex(k) {
			return declineStart("shortestPath", g, rec, in, k)
		}
	}

	parent := map[string]string{start: start}
	queue := list.New()
	queue.PushBack(start)
	g.SetVertexState(start, model.StateQueued)
	rec.Record(g, 1)

	found := false
	for queue.Len() > 0 {
		rec.Record(g, 2)
		u := queue.Remove(queue.Front()).(string)
		g.SetVertexState(u, model.StateCurrent)
		rec.Recordf(g, 3, "Visiting %s", u)
		if u == end {
			found = true
			break
		}

		for _, v := range g.Neighbors(u) {
			if _, seen := parent[v]; seen {
				continue
			}
			parent[v] = u
			queue.PushBack(v)
			g.SetVertexState(v, model.StateQueued)
			g.SetEdgeState(u, v, model.StateHighlighted)
			rec.Record(g, 7)
		}
		g.SetVertexState(u, model.StateVisited)
	}

	if !found {
		rec.Recordf(g, 8, "No path from %s to %s", start, end)
		return rec.Finish(g), nil
	}

	path := reconstructPath(parent, end)
	g.ResetStates()
	for i, k := range path {
		g.SetVertexState(k, model.StateFound)
		if i > 0 {
			g.SetEdgeState(path[i-1], k, model.StateTraversed)
		}
	}
	rec.SetResult(path...)
	rec.Recordf(g, 4, "Shortest path %s (%d hops)", strings.Join(path, " → "), len(path)-1)
	return rec.Finish(g), nil
}

// reconstructPath walks parent links back from end to the vertex that is
// its own parent.
func reconstructPath(parent map[string]string, end string) []string {
	path := []string{end}
	for node := end; parent[node] != node; {
		node = parent[node]
		path = append(path, node)
	}
	slices.Reverse(path)
	return path
}

// Distances returns the hop distance from start to every reachable vertex.
func Distances(g *model.Graph, start string) (map[string]int, error) {
	if !g.HasVertex(start) {
		return nil, model.NotFoundError("distances", model.KindGraph, start, fmt.Sprintf("Vertex %s not found", start))
	}
	distances := map[string]int{start: 0}
	queue := list.New()
	queue.PushBack(start)
	for queue.Len() > 0 {
		u := queue.Remove(queue.Front()).(string)
		for _, v := range g.Neighbors(u) {
			if _, visited := distances[v]; !visited {
				distances[v] = distances[u] + 1
				queue.PushBack(v)
			}
		}
	}
	return distances, nil
}
