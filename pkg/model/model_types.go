package model

// ElementID is a stable identity assigned to an element when it is created.
// It never changes while the element moves through its structure, so frames
// can follow "the same" element across swaps, shifts and splices.
type ElementID uint64

// NoElement marks an absent link (nil child, end of list, empty structure).
const NoElement ElementID = 0

// VisualState is the animation role of an element in a frame.
type VisualState string

// Visual state tags. Exactly one is active per element at any time.
const (
	StateDefault     VisualState = "default"
	StateComparing   VisualState = "comparing"
	StateSorted      VisualState = "sorted"
	StatePivot       VisualState = "pivot"
	StateMin         VisualState = "min"
	StateCurrent     VisualState = "current"
	StateSwapping    VisualState = "swapping"
	StateHighlighted VisualState = "highlighted"
	StateVisited     VisualState = "visited"
	StateFound       VisualState = "found"
	StateDeleted     VisualState = "deleted"
	StateInserted    VisualState = "inserted"
	StateQueued      VisualState = "queued"
	StateStacked     VisualState = "stacked"
	StateTraversed   VisualState = "traversed"
)

var validStates = map[VisualState]bool{
	StateDefault: true, StateComparing: true, StateSorted: true, StatePivot: true,
	StateMin: true, StateCurrent: true, StateSwapping: true, StateHighlighted: true,
	StateVisited: true, StateFound: true, StateDeleted: true, StateInserted: true,
	StateQueued: true, StateStacked: true, StateTraversed: true,
}

// Valid reports whether s is a known tag.
func (s VisualState) Valid() bool {
	return validStates[s]
}

// Kind identifies the structure family.
type Kind string

const (
	KindArray      Kind = "array"
	KindStack      Kind = "stack"
	KindQueue      Kind = "queue"
	KindLinkedList Kind = "list"
	KindBST        Kind = "bst"
	KindBinaryTree Kind = "binarytree"
	KindGraph      Kind = "graph"
	KindHeap       Kind = "heap"
)

// Kinds lists every supported structure family.
func Kinds() []Kind {
	return []Kind{KindArray, KindStack, KindQueue, KindLinkedList, KindBST, KindBinaryTree, KindGraph, KindHeap}
}

// Order is the comparator direction of a heap.
type Order string

const (
	MaxHeap Order = "max"
	MinHeap Order = "min"
)

// Element is a renderer-neutral view of one element of any structure.
type Element struct {
	ID    ElementID   `json:"id"`
	Label string      `json:"label"`
	State VisualState `json:"state"`
}

// Structure is one instance of one supported data structure.
//
// Clone must return a deep copy sharing no mutable memory with the receiver;
// the trace recorder relies on it to make frames immutable.
type Structure interface {
	Kind() Kind
	Len() int
	Clone() Structure
	Elements() []Element
	// ApplyTag sets tag on every element matching pred and returns how many matched.
	ApplyTag(pred func(Element) bool, tag VisualState) int
	ResetStates()
}

// All matches every element.
func All(Element) bool { return true }

// ByID matches the given element ids.
func ByID(ids ...ElementID) func(Element) bool {
	set := make(map[ElementID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(e Element) bool { return set[e.ID] }
}

// idSeq hands out element ids for one structure instance.
type idSeq struct {
	last ElementID
}

func (s *idSeq) next() ElementID {
	s.last++
	return s.last
}
