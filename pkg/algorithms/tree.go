package algorithms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

const noticeTreeEmpty = "Tree is empty"

// Traversal orders accepted by TraverseTree.
const (
	InOrder    = "inorder"
	PreOrder   = "preorder"
	PostOrder  = "postorder"
	LevelOrder = "levelorder"
)

func startTree(op string, listing trace.Listing, in *model.Tree) (*model.Tree, *trace.Recorder) {
	t := in.Clone().(*model.Tree)
	t.ResetStates()
	rec := trace.NewRecorder(op, in.Kind(), listing)
	rec.Record(t, 0)
	return t, rec
}

func requireOrdered(op string, t *model.Tree) error {
	if !t.Ordered {
		return model.InvalidInputError(op, t.Kind(), "operation requires a binary search tree")
	}
	return nil
}

// BSTInsert inserts v following the search path. A value already present is
// a duplicate notice and leaves the tree unchanged.
func BSTInsert(in *model.Tree, v int) (*trace.Trace, error) {
	if err := requireOrdered("insert", in); err != nil {
		return nil, err
	}
	t, rec := startTree("insert", BSTInsertListing, in)
	if t.Root == model.NoElement {
		id := t.Attach(model.NoElement, false, v)
		t.SetState(id, model.StateInserted)
		rec.Recordf(t, 1, "Inserted %d as the root", v)
		t.ResetStates()
		rec.Record(t, 6)
		return rec.Finish(t), nil
	}

	parent, left := model.NoElement, false
	for id := t.Root; id != model.NoElement; {
		n, _ := t.Node(id)
		t.SetState(id, model.StateHighlighted)
		if v == n.Value {
			notice := fmt.Sprintf("Value %d already exists", v)
			rec.Recordf(t, 6, "%s", notice)
			return rec.Finish(in), model.DuplicateError("insert", model.KindBST, v, notice)
		}
		parent, left = id, v < n.Value
		if left {
			rec.Record(t, 3)
			id = n.Left
		} else {
			rec.Record(t, 5)
			id = n.Right
		}
	}

	id := t.Attach(parent, left, v)
	t.SetState(id, model.StateInserted)
	rec.Recordf(t, 1, "Creating node %d", v)
	t.ResetStates()
	rec.Recordf(t, 6, "Inserted %d", v)
	return rec.Finish(t), nil
}

// BSTDelete removes v. A node with two children takes the value of its
// in-order successor, which is then removed from the right subtree.
func BSTDelete(in *model.Tree, v int) (*trace.Trace, error) {
	if err := requireOrdered("delete", in); err != nil {
		return nil, err
	}
	t, rec := startTree("delete", BSTDeleteListing, in)
	if t.Root == model.NoElement {
		rec.Recordf(t, 1, "%s", noticeTreeEmpty)
		return rec.Finish(in), model.EmptyError("delete", model.KindBST, noticeTreeEmpty)
	}

	parent, left := model.NoElement, false
	target := model.NoElement
	for id := t.Root; id != model.NoElement; {
		n, _ := t.Node(id)
		t.SetState(id, model.StateHighlighted)
		if v == n.Value {
			target = id
			break
		}
		parent, left = id, v < n.Value
		if left {
			rec.Record(t, 2)
			id = n.Left
		} else {
			rec.Record(t, 3)
			id = n.Right
		}
	}
	if target == model.NoElement {
		rec.Recordf(t, 1, "Value not found")
		return rec.Finish(in), model.NotFoundError("delete", model.KindBST, v, "Value not found")
	}

	t.SetState(target, model.StateDeleted)
	rec.Record(t, 4)
	n, _ := t.Node(target)

	switch {
	case n.Left == model.NoElement:
		t.SetChild(parent, left, n.Right)
		t.Discard(target)
		rec.Record(t, 5)
	case n.Right == model.NoElement:
		t.SetChild(parent, left, n.Left)
		t.Discard(target)
		rec.Record(t, 6)
	default:
		succParent, succ := target, n.Right
		t.SetState(succ, model.StateHighlighted)
		rec.Record(t, 7)
		for {
			s, _ := t.Node(succ)
			if s.Left == model.NoElement {
				break
			}
			succParent, succ = succ, s.Left
			t.SetState(succ, model.StateHighlighted)
			rec.Record(t, 7)
		}
		s, _ := t.Node(succ)
		t.SetState(succ, model.StateFound)
		rec.Recordf(t, 7, "In-order successor is %d", s.Value)

		t.SetValue(target, s.Value)
		t.SetState(target, model.StateInserted)
		rec.Record(t, 8)

		t.SetState(succ, model.StateDeleted)
		rec.Record(t, 9)
		t.SetChild(succParent, succParent != target, s.Right)
		t.Discard(succ)
		rec.Record(t, 9)
	}

	t.ResetStates()
	rec.Recordf(t, 10, "Deleted %d", v)
	rec.SetResult(strconv.Itoa(v))
	return rec.Finish(t), nil
}

// BSTSearch walks the search path for v. Ancestors on the path stay
// highlighted and a match is tagged found. A miss is reported in the final
// message, not as an error.
func BSTSearch(in *model.Tree, v int) (*trace.Trace, error) {
	if err := requireOrdered("search", in); err != nil {
		return nil, err
	}
	t, rec := startTree("search", BSTSearchListing, in)
	if t.Root == model.NoElement {
		rec.Recordf(t, 1, "%s", noticeTreeEmpty)
		return rec.Finish(in), model.EmptyError("search", model.KindBST, noticeTreeEmpty)
	}

	var path []string
	for id := t.Root; id != model.NoElement; {
		n, _ := t.Node(id)
		t.SetState(id, model.StateHighlighted)
		path = append(path, strconv.Itoa(n.Value))
		rec.Record(t, 2)
		if v == n.Value {
			t.SetState(id, model.StateFound)
			rec.SetResult(path...)
			rec.Recordf(t, 2, "Found %d: %s", v, strings.Join(path, " -> "))
			return rec.Finish(t), nil
		}
		if v < n.Value {
			rec.Record(t, 3)
			id = n.Left
		} else {
			rec.Record(t, 4)
			id = n.Right
		}
	}
	rec.Recordf(t, 1, "Value %d not found", v)
	return rec.Finish(t), nil
}

// BinaryTreeInsert places v in the first free slot found breadth first,
// left before right.
func BinaryTreeInsert(in *model.Tree, v int) (*trace.Trace, error) {
	if in.Ordered {
		return nil, model.InvalidInputError("insert", model.KindBST, "level-order insert requires a generic binary tree")
	}
	t, rec := startTree("insert", BinaryTreeInsertListing, in)
	if t.Root == model.NoElement {
		id := t.Attach(model.NoElement, false, v)
		t.SetState(id, model.StateInserted)
		rec.Recordf(t, 1, "Inserted %d as the root", v)
		t.ResetStates()
		return rec.Finish(t), nil
	}

	rec.Record(t, 2)
	queue := []model.ElementID{t.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n, _ := t.Node(id)
		t.SetState(id, model.StateHighlighted)
		rec.Record(t, 4)

		if n.Left == model.NoElement {
			child := t.Attach(id, true, v)
			t.SetState(child, model.StateInserted)
			rec.Recordf(t, 5, "Inserted %d as left child of %d", v, n.Value)
			break
		}
		queue = append(queue, n.Left)
		rec.Record(t, 6)
		if n.Right == model.NoElement {
			child := t.Attach(id, false, v)
			t.SetState(child, model.StateInserted)
			rec.Recordf(t, 7, "Inserted %d as right child of %d", v, n.Value)
			break
		}
		queue = append(queue, n.Right)
		rec.Record(t, 8)
		t.SetState(id, model.StateDefault)
	}

	t.ResetStates()
	rec.Recordf(t, trace.NoLine, "Inserted %d", v)
	return rec.Finish(t), nil
}

// TraverseTree runs one of the four textbook traversals. Each node is
// highlighted while examined and tagged current when its value is appended
// to the output.
func TraverseTree(in *model.Tree, order string) (*trace.Trace, error) {
	listing, name, ok := traversalListing(order)
	if !ok {
		return nil, model.InvalidInputError(order, in.Kind(), "unknown traversal %q", order)
	}
	t, rec := startTree(order, listing, in)
	if t.Root == model.NoElement {
		rec.Recordf(t, 1, "%s", noticeTreeEmpty)
		return rec.Finish(in), model.EmptyError(order, in.Kind(), noticeTreeEmpty)
	}

	var out []string
	visit := func(id model.ElementID, line int) {
		n, _ := t.Node(id)
		t.SetState(id, model.StateCurrent)
		out = append(out, strconv.Itoa(n.Value))
		rec.Recordf(t, line, "Visited %d", n.Value)
	}

	if order == LevelOrder {
		queue := []model.ElementID{t.Root}
		t.SetState(t.Root, model.StateHighlighted)
		rec.Record(t, 1)
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			rec.Record(t, 3)
			visit(id, 4)
			n, _ := t.Node(id)
			if n.Left != model.NoElement {
				queue = append(queue, n.Left)
				t.SetState(n.Left, model.StateHighlighted)
				rec.Record(t, 5)
			}
			if n.Right != model.NoElement {
				queue = append(queue, n.Right)
				t.SetState(n.Right, model.StateHighlighted)
				rec.Record(t, 6)
			}
			t.SetState(id, model.StateDefault)
		}
	} else {
		var walk func(id model.ElementID)
		walk = func(id model.ElementID) {
			if id == model.NoElement {
				return
			}
			n, _ := t.Node(id)
			t.SetState(id, model.StateHighlighted)
			rec.Record(t, 1)
			switch order {
			case InOrder:
				rec.Record(t, 2)
				walk(n.Left)
				visit(id, 3)
				rec.Record(t, 4)
				walk(n.Right)
			case PreOrder:
				visit(id, 2)
				rec.Record(t, 3)
				walk(n.Left)
				rec.Record(t, 4)
				walk(n.Right)
			case PostOrder:
				rec.Record(t, 2)
				walk(n.Left)
				rec.Record(t, 3)
				walk(n.Right)
				visit(id, 4)
			}
			t.SetState(id, model.StateDefault)
		}
		walk(t.Root)
	}

	t.ResetStates()
	rec.SetResult(out...)
	rec.Recordf(t, trace.NoLine, "%s traversal: %s", name, strings.Join(out, ", "))
	return rec.Finish(t), nil
}

func traversalListing(order string) (trace.Listing, string, bool) {
	switch order {
	case InOrder:
		return InOrderListing, "In-order", true
	case PreOrder:
		return PreOrderListing, "Pre-order", true
	case PostOrder:
		return PostOrderListing, "Post-order", true
	case LevelOrder:
		return LevelOrderListing, "Level-order", true
	}
	return trace.Listing{}, "", false
}
