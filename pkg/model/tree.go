package model

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// TreeNode is one node of a binary tree. Left and Right reference child
// nodes in the tree's arena; each child has exactly one parent.
type TreeNode struct {
	ID    ElementID   `json:"id"`
	Value int         `json:"value"`
	Left  ElementID   `json:"left"`
	Right ElementID   `json:"right"`
	State VisualState `json:"state"`
}

// Tree is a binary search tree (Ordered) or a generic binary tree.
type Tree struct {
	Root    ElementID
	Ordered bool
	nodes   map[ElementID]TreeNode
	ids     idSeq
}

// NewBST builds a binary search tree by inserting values in order.
// Duplicates are skipped.
func NewBST(values ...int) *Tree {
	t := &Tree{Ordered: true, nodes: make(map[ElementID]TreeNode)}
	for _, v := range values {
		t.insertOrdered(v)
	}
	return t
}

// NewBinaryTree builds a generic binary tree filling slots in level order.
func NewBinaryTree(values ...int) *Tree {
	t := &Tree{nodes: make(map[ElementID]TreeNode)}
	for _, v := range values {
		parent, left := t.FirstFreeSlot()
		t.Attach(parent, left, v)
	}
	return t
}

func (t *Tree) Kind() Kind {
	if t.Ordered {
		return KindBST
	}
	return KindBinaryTree
}

func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) Clone() Structure {
	c := *t
	c.nodes = maps.Clone(t.nodes)
	if c.nodes == nil {
		c.nodes = make(map[ElementID]TreeNode)
	}
	return &c
}

// Elements lists nodes in level order.
func (t *Tree) Elements() []Element {
	ids := t.LevelOrder()
	out := make([]Element, len(ids))
	for i, id := range ids {
		n := t.nodes[id]
		out[i] = Element{ID: id, Label: strconv.Itoa(n.Value), State: n.State}
	}
	return out
}

func (t *Tree) ApplyTag(pred func(Element) bool, tag VisualState) int {
	n := 0
	for _, e := range t.Elements() {
		if pred(e) {
			t.SetState(e.ID, tag)
			n++
		}
	}
	return n
}

func (t *Tree) ResetStates() { t.ApplyTag(All, StateDefault) }

// Node returns the node with the given id.
func (t *Tree) Node(id ElementID) (TreeNode, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// SetState tags the node with the given id.
func (t *Tree) SetState(id ElementID, s VisualState) {
	if n, ok := t.nodes[id]; ok {
		n.State = s
		t.nodes[id] = n
	}
}

// SetValue overwrites the payload of a node in place.
func (t *Tree) SetValue(id ElementID, v int) {
	if n, ok := t.nodes[id]; ok {
		n.Value = v
		t.nodes[id] = n
	}
}

// Attach creates a node holding v as the left or right child of parent, or
// as the root when parent is NoElement, and returns its id.
func (t *Tree) Attach(parent ElementID, left bool, v int) ElementID {
	if t.nodes == nil {
		t.nodes = make(map[ElementID]TreeNode)
	}
	n := TreeNode{ID: t.ids.next(), Value: v, State: StateDefault}
	t.nodes[n.ID] = n
	if parent == NoElement {
		t.Root = n.ID
		return n.ID
	}
	t.SetChild(parent, left, n.ID)
	return n.ID
}

// SetChild points parent's left or right slot at child. A NoElement parent
// replaces the root.
func (t *Tree) SetChild(parent ElementID, left bool, child ElementID) {
	if parent == NoElement {
		t.Root = child
		return
	}
	p := t.nodes[parent]
	if left {
		p.Left = child
	} else {
		p.Right = child
	}
	t.nodes[parent] = p
}

// Discard drops a node that has already been unlinked from its parent.
func (t *Tree) Discard(id ElementID) {
	delete(t.nodes, id)
}

// FirstFreeSlot finds the first empty child slot in level order, checking
// left before right. It returns NoElement for an empty tree.
func (t *Tree) FirstFreeSlot() (parent ElementID, left bool) {
	for _, id := range t.LevelOrder() {
		n := t.nodes[id]
		if n.Left == NoElement {
			return id, true
		}
		if n.Right == NoElement {
			return id, false
		}
	}
	return NoElement, true
}

// LevelOrder returns node ids breadth first, left before right.
func (t *Tree) LevelOrder() []ElementID {
	if t.Root == NoElement {
		return nil
	}
	out := make([]ElementID, 0, len(t.nodes))
	queue := []ElementID{t.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		n := t.nodes[id]
		if n.Left != NoElement {
			queue = append(queue, n.Left)
		}
		if n.Right != NoElement {
			queue = append(queue, n.Right)
		}
	}
	return out
}

// InOrderValues returns payloads in in-order sequence.
func (t *Tree) InOrderValues() []int {
	out := make([]int, 0, len(t.nodes))
	var walk func(ElementID)
	walk = func(id ElementID) {
		if id == NoElement {
			return
		}
		n := t.nodes[id]
		walk(n.Left)
		out = append(out, n.Value)
		walk(n.Right)
	}
	walk(t.Root)
	return out
}

// Height returns the number of levels.
func (t *Tree) Height() int {
	var h func(ElementID) int
	h = func(id ElementID) int {
		if id == NoElement {
			return 0
		}
		n := t.nodes[id]
		return 1 + max(h(n.Left), h(n.Right))
	}
	return h(t.Root)
}

// CheckOrder verifies the search tree ordering: every value in a left
// subtree is smaller and every value in a right subtree is larger.
func (t *Tree) CheckOrder() error {
	var check func(id ElementID, lo, hi *int) error
	check = func(id ElementID, lo, hi *int) error {
		if id == NoElement {
			return nil
		}
		n, ok := t.nodes[id]
		if !ok {
			return fmt.Errorf("dangling child %d", id)
		}
		if (lo != nil && n.Value <= *lo) || (hi != nil && n.Value >= *hi) {
			return fmt.Errorf("node %d value %d out of bounds", id, n.Value)
		}
		if err := check(n.Left, lo, &n.Value); err != nil {
			return err
		}
		return check(n.Right, &n.Value, hi)
	}
	return check(t.Root, nil, nil)
}

func (t *Tree) insertOrdered(v int) {
	parent, left := NoElement, false
	for id := t.Root; id != NoElement; {
		n := t.nodes[id]
		if v == n.Value {
			return
		}
		parent, left = id, v < n.Value
		if left {
			id = n.Left
		} else {
			id = n.Right
		}
	}
	t.Attach(parent, left, v)
}

// MarshalJSON emits the nodes in level order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	ids := t.LevelOrder()
	nodes := make([]TreeNode, len(ids))
	for i, id := range ids {
		nodes[i] = t.nodes[id]
	}
	return json.Marshal(struct {
		Root    ElementID  `json:"root"`
		Ordered bool       `json:"ordered"`
		Nodes   []TreeNode `json:"nodes"`
	}{t.Root, t.Ordered, nodes})
}
