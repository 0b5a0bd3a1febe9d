package model

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// ListNode is one node of a linked list. Next and Prev are non-owning
// references into the list's node arena; Prev is maintained for every list
// and only rendered for doubly linked ones.
type ListNode struct {
	ID    ElementID   `json:"id"`
	Value int         `json:"value"`
	Next  ElementID   `json:"next"`
	Prev  ElementID   `json:"prev"`
	State VisualState `json:"state"`
}

// LinkedList is a singly or doubly linked list over an id-keyed node arena.
// Every node is owned by the list and reachable from at most one predecessor.
type LinkedList struct {
	Head   ElementID
	Doubly bool
	nodes  map[ElementID]ListNode
	ids    idSeq
}

// NewLinkedList creates a list holding values in order.
func NewLinkedList(doubly bool, values ...int) *LinkedList {
	l := &LinkedList{Doubly: doubly, nodes: make(map[ElementID]ListNode)}
	tail := NoElement
	for _, v := range values {
		tail = l.InsertAfter(tail, v)
	}
	return l
}

func (l *LinkedList) Kind() Kind { return KindLinkedList }
func (l *LinkedList) Len() int   { return len(l.nodes) }

func (l *LinkedList) Clone() Structure {
	c := *l
	c.nodes = maps.Clone(l.nodes)
	if c.nodes == nil {
		c.nodes = make(map[ElementID]ListNode)
	}
	return &c
}

func (l *LinkedList) Elements() []Element {
	ids := l.IDs()
	out := make([]Element, len(ids))
	for i, id := range ids {
		n := l.nodes[id]
		out[i] = Element{ID: id, Label: strconv.Itoa(n.Value), State: n.State}
	}
	return out
}

func (l *LinkedList) ApplyTag(pred func(Element) bool, tag VisualState) int {
	n := 0
	for _, e := range l.Elements() {
		if pred(e) {
			l.SetState(e.ID, tag)
			n++
		}
	}
	return n
}

func (l *LinkedList) ResetStates() { l.ApplyTag(All, StateDefault) }

// Node returns the node with the given id.
func (l *LinkedList) Node(id ElementID) (ListNode, bool) {
	n, ok := l.nodes[id]
	return n, ok
}

// IDs returns node ids in list order.
func (l *LinkedList) IDs() []ElementID {
	out := make([]ElementID, 0, len(l.nodes))
	for id := l.Head; id != NoElement; id = l.nodes[id].Next {
		out = append(out, id)
	}
	return out
}

// Values returns payloads in list order.
func (l *LinkedList) Values() []int {
	ids := l.IDs()
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = l.nodes[id].Value
	}
	return out
}

// Tail returns the last node id, or NoElement when empty.
func (l *LinkedList) Tail() ElementID {
	tail := NoElement
	for id := l.Head; id != NoElement; id = l.nodes[id].Next {
		tail = id
	}
	return tail
}

// At returns the id at 0-indexed position pos.
func (l *LinkedList) At(pos int) (ElementID, bool) {
	if pos < 0 {
		return NoElement, false
	}
	i := 0
	for id := l.Head; id != NoElement; id = l.nodes[id].Next {
		if i == pos {
			return id, true
		}
		i++
	}
	return NoElement, false
}

// InsertAfter links a new node after prev, or at the head when prev is
// NoElement, and returns its id.
func (l *LinkedList) InsertAfter(prev ElementID, value int) ElementID {
	if l.nodes == nil {
		l.nodes = make(map[ElementID]ListNode)
	}
	n := ListNode{ID: l.ids.next(), Value: value, State: StateDefault}
	if prev == NoElement {
		n.Next = l.Head
		if l.Head != NoElement {
			head := l.nodes[l.Head]
			head.Prev = n.ID
			l.nodes[l.Head] = head
		}
		l.Head = n.ID
		l.nodes[n.ID] = n
		return n.ID
	}
	p := l.nodes[prev]
	n.Prev = prev
	n.Next = p.Next
	if p.Next != NoElement {
		next := l.nodes[p.Next]
		next.Prev = n.ID
		l.nodes[p.Next] = next
	}
	p.Next = n.ID
	l.nodes[prev] = p
	l.nodes[n.ID] = n
	return n.ID
}

// Remove unlinks and discards the node with the given id.
func (l *LinkedList) Remove(id ElementID) error {
	n, ok := l.nodes[id]
	if !ok {
		return NotFoundError("remove", KindLinkedList, id, "node not found")
	}
	if n.Prev == NoElement {
		l.Head = n.Next
	} else {
		p := l.nodes[n.Prev]
		p.Next = n.Next
		l.nodes[n.Prev] = p
	}
	if n.Next != NoElement {
		next := l.nodes[n.Next]
		next.Prev = n.Prev
		l.nodes[n.Next] = next
	}
	delete(l.nodes, id)
	return nil
}

// SetState tags the node with the given id.
func (l *LinkedList) SetState(id ElementID, s VisualState) {
	if n, ok := l.nodes[id]; ok {
		n.State = s
		l.nodes[id] = n
	}
}

// CheckLinks verifies that every node is reachable exactly once from the
// head and that prev links mirror next links.
func (l *LinkedList) CheckLinks() error {
	seen := make(map[ElementID]bool, len(l.nodes))
	prev := NoElement
	for id := l.Head; id != NoElement; id = l.nodes[id].Next {
		if seen[id] {
			return fmt.Errorf("node %d reachable twice", id)
		}
		seen[id] = true
		n, ok := l.nodes[id]
		if !ok {
			return fmt.Errorf("dangling link to %d", id)
		}
		if n.Prev != prev {
			return fmt.Errorf("node %d prev=%d, want %d", id, n.Prev, prev)
		}
		prev = id
	}
	if len(seen) != len(l.nodes) {
		return fmt.Errorf("%d nodes unreachable from head", len(l.nodes)-len(seen))
	}
	return nil
}

// MarshalJSON emits the nodes in list order.
func (l *LinkedList) MarshalJSON() ([]byte, error) {
	ids := l.IDs()
	nodes := make([]ListNode, len(ids))
	for i, id := range ids {
		nodes[i] = l.nodes[id]
	}
	return json.Marshal(struct {
		Head   ElementID  `json:"head"`
		Doubly bool       `json:"doubly"`
		Nodes  []ListNode `json:"nodes"`
	}{l.Head, l.Doubly, nodes})
}
