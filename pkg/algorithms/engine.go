package algorithms

import (
	"slices"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// Params carries the operation parameters. Which fields an operation reads
// is listed in its OperationSpec.
type Params struct {
	Value    int
	Key      int
	Position int
	Item     string
	Vertex   string
	From     string
	To       string
	X        float64
	Y        float64
}

// Param names used in OperationSpec.Needs.
const (
	ParamValue    = "value"
	ParamKey      = "key"
	ParamPosition = "position"
	ParamItem     = "item"
	ParamVertex   = "vertex"
	ParamFrom     = "from"
	ParamTo       = "to"
)

// Engine produces the trace of one operation over a structure snapshot.
type Engine func(s model.Structure, p Params) (*trace.Trace, error)

// OperationSpec describes one operation of a structure family.
type OperationSpec struct {
	Name    string
	Needs   []string
	Listing trace.Listing
	Mutates bool
	run     Engine
}

var catalog = map[model.Kind][]OperationSpec{}

func register(kind model.Kind, name string, listing trace.Listing, mutates bool, run Engine, needs ...string) {
	catalog[kind] = append(catalog[kind], OperationSpec{Name: name, Needs: needs, Listing: listing, Mutates: mutates, run: run})
}

func init() {
	sorts := map[string]trace.Listing{
		SortBubble: BubbleSortListing, SortSelection: SelectionSortListing, SortInsertion: InsertionSortListing,
		SortMerge: MergeSortListing, SortQuick: QuickSortListing, SortHeap: HeapSortListing,
	}
	for _, name := range SortAlgorithms() {
		register(model.KindArray, name, sorts[name], true, func(s model.Structure, _ Params) (*trace.Trace, error) {
			return Sort(name, s.(*model.Array))
		})
	}

	register(model.KindStack, "push", PushListing, true, func(s model.Structure, p Params) (*trace.Trace, error) {
		return Push(s.(*model.Stack), p.Item), nil
	}, ParamItem)
	register(model.KindStack, "pop", PopListing, true, func(s model.Structure, _ Params) (*trace.Trace, error) {
		return Pop(s.(*model.Stack))
	})
	register(model.KindQueue, "enqueue", EnqueueListing, true, func(s model.Structure, p Params) (*trace.Trace, error) {
		return Enqueue(s.(*model.Queue), p.Item), nil
	}, ParamItem)
	register(model.KindQueue, "dequeue", DequeueListing, true, func(s model.Structure, _ Params) (*trace.Trace, error) {
		return Dequeue(s.(*model.Queue))
	})

	list := func(f func(*model.LinkedList, Params) (*trace.Trace, error)) Engine {
		return func(s model.Structure, p Params) (*trace.Trace, error) { return f(s.(*model.LinkedList), p) }
	}
	register(model.KindLinkedList, "insertAtBeginning", InsertAtBeginningListing, true, list(func(l *model.LinkedList, p Params) (*trace.Trace, error) {
		return InsertAtBeginning(l, p.Value)
	}), ParamValue)
	register(model.KindLinkedList, "insertAtEnd", InsertAtEndListing, true, list(func(l *model.LinkedList, p Params) (*trace.Trace, error) {
		return InsertAtEnd(l, p.Value)
	}), ParamValue)
	register(model.KindLinkedList, "insertAtPosition", InsertAtPositionListing, true, list(func(l *model.LinkedList, p Params) (*trace.Trace, error) {
		return InsertAtPosition(l, p.Value, p.Position)
	}), ParamValue, ParamPosition)
	register(model.KindLinkedList, "insertAfterKey", InsertAfterKeyListing, true, list(func(l *model.LinkedList, p Params) (*trace.Trace, error) {
		return InsertAfterKey(l, p.Key, p.Value)
	}), ParamKey, ParamValue)
	register(model.KindLinkedList, "deleteFromBeginning", DeleteFromBeginningListing, true, list(func(l *model.LinkedList, _ Params) (*trace.Trace, error) {
		return DeleteFromBeginning(l)
	}))
	register(model.KindLinkedList, "deleteFromEnd", DeleteFromEndListing, true, list(func(l *model.LinkedList, _ Params) (*trace.Trace, error) {
		return DeleteFromEnd(l)
	}))
	register(model.KindLinkedList, "deleteFromPosition", DeleteFromPositionListing, true, list(func(l *model.LinkedList, p Params) (*trace.Trace, error) {
		return DeleteFromPosition(l, p.Position)
	}), ParamPosition)
	register(model.KindLinkedList, "deleteByKey", DeleteByKeyListing, true, list(func(l *model.LinkedList, p Params) (*trace.Trace, error) {
		return DeleteByKey(l, p.Key)
	}), ParamKey)
	register(model.KindLinkedList, "traverse", TraverseListing, false, list(func(l *model.LinkedList, _ Params) (*trace.Trace, error) {
		return TraverseList(l)
	}))
	register(model.KindLinkedList, "search", SearchListListing, false, list(func(l *model.LinkedList, p Params) (*trace.Trace, error) {
		return SearchList(l, p.Key)
	}), ParamKey)

	tree := func(f func(*model.Tree, Params) (*trace.Trace, error)) Engine {
		return func(s model.Structure, p Params) (*trace.Trace, error) { return f(s.(*model.Tree), p) }
	}
	register(model.KindBST, "insert", BSTInsertListing, true, tree(func(t *model.Tree, p Params) (*trace.Trace, error) {
		return BSTInsert(t, p.Value)
	}), ParamValue)
	register(model.KindBST, "delete", BSTDeleteListing, true, tree(func(t *model.Tree, p Params) (*trace.Trace, error) {
		return BSTDelete(t, p.Value)
	}), ParamValue)
	register(model.KindBST, "search", BSTSearchListing, false, tree(func(t *model.Tree, p Params) (*trace.Trace, error) {
		return BSTSearch(t, p.Value)
	}), ParamValue)
	register(model.KindBinaryTree, "insert", BinaryTreeInsertListing, true, tree(func(t *model.Tree, p Params) (*trace.Trace, error) {
		return BinaryTreeInsert(t, p.Value)
	}), ParamValue)
	for _, order := range []string{InOrder, PreOrder, PostOrder, LevelOrder} {
		listing, _, _ := traversalListing(order)
		for _, kind := range []model.Kind{model.KindBST, model.KindBinaryTree} {
			register(kind, order, listing, false, tree(func(t *model.Tree, _ Params) (*trace.Trace, error) {
				return TraverseTree(t, order)
			}))
		}
	}

	graph := func(f func(*model.Graph, Params) (*trace.Trace, error)) Engine {
		return func(s model.Structure, p Params) (*trace.Trace, error) { return f(s.(*model.Graph), p) }
	}
	register(model.KindGraph, "addVertex", AddVertexListing, true, graph(func(g *model.Graph, p Params) (*trace.Trace, error) {
		return AddVertex(g, p.Vertex, p.X, p.Y)
	}), ParamVertex)
	register(model.KindGraph, "removeVertex", RemoveVertexListing, true, graph(func(g *model.Graph, p Params) (*trace.Trace, error) {
		return RemoveVertex(g, p.Vertex)
	}), ParamVertex)
	register(model.KindGraph, "addEdge", AddEdgeListing, true, graph(func(g *model.Graph, p Params) (*trace.Trace, error) {
		return AddEdge(g, p.From, p.To)
	}), ParamFrom, ParamTo)
	register(model.KindGraph, "removeEdge", RemoveEdgeListing, true, graph(func(g *model.Graph, p Params) (*trace.Trace, error) {
		return RemoveEdge(g, p.From, p.To)
	}), ParamFrom, ParamTo)
	register(model.KindGraph, "bfs", BFSListing, false, graph(func(g *model.Graph, p Params) (*trace.Trace, error) {
		return BFS(g, p.Vertex)
	}), ParamVertex)
	register(model.KindGraph, "dfs", DFSListing, false, graph(func(g *model.Graph, p Params) (*trace.Trace, error) {
		return DFS(g, p.Vertex)
	}), ParamVertex)
	register(model.KindGraph, "shortestPath", ShortestPathListing, false, graph(func(g *model.Graph, p Params) (*trace.Trace, error) {
		return ShortestPath(g, p.From, p.To)
	}), ParamFrom, ParamTo)
	register(model.KindGraph, "topologicalSort", TopologicalSortListing, false, graph(func(g *model.Graph, _ Params) (*trace.Trace, error) {
		return TopologicalSort(g)
	}))
	register(model.KindGraph, "components", ComponentsListing, false, graph(func(g *model.Graph, _ Params) (*trace.Trace, error) {
		return Components(g)
	}))

	heap := func(f func(*model.Heap, Params) (*trace.Trace, error)) Engine {
		return func(s model.Structure, p Params) (*trace.Trace, error) { return f(s.(*model.Heap), p) }
	}
	register(model.KindHeap, "insert", HeapInsertListing, true, heap(func(h *model.Heap, p Params) (*trace.Trace, error) {
		return HeapInsert(h, p.Value)
	}), ParamValue)
	register(model.KindHeap, "deleteRoot", HeapDeleteListing, true, heap(func(h *model.Heap, _ Params) (*trace.Trace, error) {
		return HeapDeleteRoot(h)
	}))
	register(model.KindHeap, "peek", HeapPeekListing, false, heap(func(h *model.Heap, _ Params) (*trace.Trace, error) {
		return HeapPeek(h)
	}))
	register(model.KindHeap, "buildHeap", BuildHeapListing, true, heap(func(h *model.Heap, _ Params) (*trace.Trace, error) {
		return BuildHeap(h)
	}))
	register(model.KindHeap, "heapSort", HeapSortHeapListing, false, heap(func(h *model.Heap, _ Params) (*trace.Trace, error) {
		return HeapSortHeap(h)
	}))
}

// Operations lists the operations of a structure family in menu order.
func Operations(kind model.Kind) []OperationSpec {
	return slices.Clone(catalog[kind])
}

// Lookup finds an operation of a structure family.
func Lookup(kind model.Kind, op string) (OperationSpec, bool) {
	for _, spec := range catalog[kind] {
		if spec.Name == op {
			return spec, true
		}
	}
	return OperationSpec{}, false
}

// Unavailable returns why op cannot complete on s as it stands, or "" when
// nothing in the structure blocks it. Parameters are not checked.
func Unavailable(s model.Structure, op string) string {
	g, ok := s.(*model.Graph)
	if !ok || op != "topologicalSort" {
		return ""
	}
	switch {
	case !g.Directed:
		return "requires a directed graph"
	case !IsDAG(g):
		return "graph contains a cycle"
	}
	return ""
}

// Run invokes op over a snapshot of s. s itself is never modified; the
// resulting structure is available from the trace's Final.
func Run(s model.Structure, op string, p Params) (*trace.Trace, error) {
	if s == nil {
		return nil, model.InvalidInputError(op, "", "no structure")
	}
	spec, ok := Lookup(s.Kind(), op)
	if !ok {
		return nil, model.InvalidInputError(op, s.Kind(), "unknown operation %q for %s", op, s.Kind())
	}
	return spec.run(s, p)
}
