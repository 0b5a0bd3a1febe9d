package algorithms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

const (
	noticeListEmpty   = "List is empty, nothing to delete"
	noticeOutOfRange  = "Position out of range"
	noticeListNoNodes = "List is empty"
)

func startList(op string, listing trace.Listing, in *model.LinkedList) (*model.LinkedList, *trace.Recorder) {
	l := in.Clone().(*model.LinkedList)
	l.ResetStates()
	rec := trace.NewRecorder(op, model.KindLinkedList, listing)
	rec.Record(l, 0)
	return l, rec
}

// settle clears every tag and records the closing frame.
func settle(l *model.LinkedList, rec *trace.Recorder, line int, format string, args ...any) *trace.Trace {
	l.ResetStates()
	rec.Recordf(l, line, format, args...)
	return rec.Finish(l)
}

// InsertAtBeginning links a new head node.
func InsertAtBeginning(in *model.LinkedList, value int) (*trace.Trace, error) {
	l, rec := startList("insertAtBeginning", InsertAtBeginningListing, in)
	id := l.InsertAfter(model.NoElement, value)
	l.SetState(id, model.StateInserted)
	rec.Recordf(l, 1, "Creating node %d", value)
	rec.Record(l, 2)
	rec.Record(l, 3)
	return settle(l, rec, 4, "Inserted %d at the beginning", value), nil
}

// InsertAtEnd walks to the tail and links a new node after it.
func InsertAtEnd(in *model.LinkedList, value int) (*trace.Trace, error) {
	l, rec := startList("insertAtEnd", InsertAtEndListing, in)
	rec.Recordf(l, 1, "Creating node %d", value)
	if l.Len() == 0 {
		id := l.InsertAfter(model.NoElement, value)
		l.SetState(id, model.StateInserted)
		rec.Record(l, 2)
		return settle(l, rec, trace.NoLine, "Inserted %d as the head", value), nil
	}

	tail := walkTo(l, rec, -1, 3, 5)
	id := l.InsertAfter(tail, value)
	l.SetState(id, model.StateInserted)
	rec.Record(l, 6)
	return settle(l, rec, trace.NoLine, "Inserted %d at the end", value), nil
}

// InsertAtPosition inserts value so that it ends up at 0-indexed position
// pos. A position at or past the end appends.
func InsertAtPosition(in *model.LinkedList, value, pos int) (*trace.Trace, error) {
	if pos < 0 {
		return nil, model.InvalidInputError("insertAtPosition", model.KindLinkedList, "position must be non-negative, got %d", pos)
	}
	l, rec := startList("insertAtPosition", InsertAtPositionListing, in)
	rec.Record(l, 1)
	if pos == 0 || l.Len() == 0 {
		id := l.InsertAfter(model.NoElement, value)
		l.SetState(id, model.StateInserted)
		rec.Recordf(l, 1, "Inserted %d at the beginning", value)
		return settle(l, rec, trace.NoLine, "Inserted %d at position 0", value), nil
	}

	cur := walkTo(l, rec, pos-1, 2, 4)
	id := l.InsertAfter(cur, value)
	l.SetState(id, model.StateInserted)
	rec.Recordf(l, 5, "Creating node %d", value)
	rec.Record(l, 6)
	rec.Record(l, 7)
	at := indexOf(l, id)
	return settle(l, rec, trace.NoLine, "Inserted %d at position %d", value, at), nil
}

// InsertAfterKey links value after the first node holding key. A missing
// key appends at the end; an empty list gets value as its head.
func InsertAfterKey(in *model.LinkedList, key, value int) (*trace.Trace, error) {
	l, rec := startList("insertAfterKey", InsertAfterKeyListing, in)
	rec.Record(l, 1)
	if l.Len() == 0 {
		id := l.InsertAfter(model.NoElement, value)
		l.SetState(id, model.StateInserted)
		rec.Record(l, 4)
		return settle(l, rec, trace.NoLine, "List was empty, inserted %d as the head", value), nil
	}

	target := model.NoElement
	last := model.NoElement
	for _, id := range l.IDs() {
		n, _ := l.Node(id)
		l.SetState(id, model.StateHighlighted)
		rec.Record(l, 2)
		last = id
		if n.Value == key {
			l.SetState(id, model.StateFound)
			rec.Record(l, 2)
			target = id
			break
		}
		rec.Record(l, 3)
	}

	if target == model.NoElement {
		rec.Recordf(l, 4, "Key %d not found, inserting at the end", key)
		id := l.InsertAfter(last, value)
		l.SetState(id, model.StateInserted)
		rec.Record(l, 4)
		return settle(l, rec, trace.NoLine, "Key %d not found, inserted %d at the end", key, value), nil
	}

	id := l.InsertAfter(target, value)
	l.SetState(id, model.StateInserted)
	rec.Recordf(l, 5, "Creating node %d", value)
	rec.Record(l, 6)
	rec.Record(l, 7)
	return settle(l, rec, trace.NoLine, "Inserted %d after %d", value, key), nil
}

// DeleteFromBeginning unlinks the head.
func DeleteFromBeginning(in *model.LinkedList) (*trace.Trace, error) {
	l, rec := startList("deleteFromBeginning", DeleteFromBeginningListing, in)
	if l.Len() == 0 {
		return declineEmpty("deleteFromBeginning", l, rec, 1)
	}
	rec.Record(l, 1)
	head := l.Head
	n, _ := l.Node(head)
	l.SetState(head, model.StateDeleted)
	rec.Record(l, 2)
	if err := l.Remove(head); err != nil {
		return rec.Finish(in), err
	}
	rec.SetResult(strconv.Itoa(n.Value))
	return settle(l, rec, 3, "Deleted %d from the beginning", n.Value), nil
}

// DeleteFromEnd walks to the tail and unlinks it.
func DeleteFromEnd(in *model.LinkedList) (*trace.Trace, error) {
	l, rec := startList("deleteFromEnd", DeleteFromEndListing, in)
	if l.Len() == 0 {
		return declineEmpty("deleteFromEnd", l, rec, 1)
	}
	rec.Record(l, 1)
	rec.Record(l, 2)
	tail := walkTo(l, rec, -1, 3, 5)
	n, _ := l.Node(tail)
	l.SetState(tail, model.StateDeleted)
	rec.Record(l, 6)
	if err := l.Remove(tail); err != nil {
		return rec.Finish(in), err
	}
	rec.SetResult(strconv.Itoa(n.Value))
	return settle(l, rec, trace.NoLine, "Deleted %d from the end", n.Value), nil
}

// DeleteFromPosition unlinks the node at 0-indexed position pos. An
// out-of-range position declines with the list unchanged.
func DeleteFromPosition(in *model.LinkedList, pos int) (*trace.Trace, error) {
	if pos < 0 {
		return nil, model.InvalidInputError("deleteFromPosition", model.KindLinkedList, "position must be non-negative, got %d", pos)
	}
	l, rec := startList("deleteFromPosition", DeleteFromPositionListing, in)
	if l.Len() == 0 {
		return declineEmpty("deleteFromPosition", l, rec, 1)
	}
	rec.Record(l, 1)
	if pos == 0 {
		head := l.Head
		n, _ := l.Node(head)
		l.SetState(head, model.StateDeleted)
		rec.Record(l, 2)
		if err := l.Remove(head); err != nil {
			return rec.Finish(in), err
		}
		rec.SetResult(strconv.Itoa(n.Value))
		return settle(l, rec, trace.NoLine, "Deleted %d from position 0", n.Value), nil
	}

	cur := walkTo(l, rec, pos-1, 3, 5)
	prev, _ := l.Node(cur)
	if prev.Next == model.NoElement {
		err := model.NotFoundError("deleteFromPosition", model.KindLinkedList, pos, noticeOutOfRange)
		rec.Recordf(l, 6, "%s", noticeOutOfRange)
		return rec.Finish(in), err
	}

	target := prev.Next
	n, _ := l.Node(target)
	l.SetState(target, model.StateDeleted)
	rec.Record(l, 7)
	if err := l.Remove(target); err != nil {
		return rec.Finish(in), err
	}
	rec.SetResult(strconv.Itoa(n.Value))
	return settle(l, rec, trace.NoLine, "Deleted %d from position %d", n.Value, pos), nil
}

// DeleteByKey unlinks the first node holding key.
func DeleteByKey(in *model.LinkedList, key int) (*trace.Trace, error) {
	l, rec := startList("deleteByKey", DeleteByKeyListing, in)
	if l.Len() == 0 {
		return declineEmpty("deleteByKey", l, rec, 1)
	}
	rec.Record(l, 1)

	target := model.NoElement
	for i, id := range l.IDs() {
		n, _ := l.Node(id)
		l.SetState(id, model.StateHighlighted)
		line := 4
		if i == 0 {
			line = 2
		}
		rec.Record(l, line)
		if n.Value == key {
			target = id
			break
		}
	}
	if target == model.NoElement {
		notice := fmt.Sprintf("Key %d not found", key)
		rec.Recordf(l, 6, "%s", notice)
		return rec.Finish(in), model.NotFoundError("deleteByKey", model.KindLinkedList, key, notice)
	}

	l.SetState(target, model.StateDeleted)
	rec.Record(l, 7)
	if err := l.Remove(target); err != nil {
		return rec.Finish(in), err
	}
	rec.SetResult(strconv.Itoa(key))
	return settle(l, rec, trace.NoLine, "Deleted %d", key), nil
}

// TraverseList visits every node in list order.
func TraverseList(in *model.LinkedList) (*trace.Trace, error) {
	l, rec := startList("traverse", TraverseListing, in)
	if l.Len() == 0 {
		err := model.EmptyError("traverse", model.KindLinkedList, noticeListNoNodes)
		rec.Recordf(l, 2, "%s", noticeListNoNodes)
		return rec.Finish(in), err
	}
	rec.Record(l, 1)

	var visited []string
	for _, id := range l.IDs() {
		n, _ := l.Node(id)
		l.SetState(id, model.StateCurrent)
		rec.Record(l, 3)
		visited = append(visited, strconv.Itoa(n.Value))
		l.SetState(id, model.StateHighlighted)
		rec.Record(l, 4)
	}
	rec.SetResult(visited...)
	return settle(l, rec, trace.NoLine, "Traversal result: %s", strings.Join(visited, " -> ")), nil
}

// SearchList finds the first node holding key. A miss is reported in the final
// message and an empty result, not as an error.
func SearchList(in *model.LinkedList, key int) (*trace.Trace, error) {
	l, rec := startList("search", SearchListListing, in)
	if l.Len() == 0 {
		err := model.EmptyError("search", model.KindLinkedList, noticeListNoNodes)
		rec.Recordf(l, 2, "%s", noticeListNoNodes)
		return rec.Finish(in), err
	}
	rec.Record(l, 1)

	for i, id := range l.IDs() {
		n, _ := l.Node(id)
		l.SetState(id, model.StateHighlighted)
		rec.Record(l, 3)
		if n.Value == key {
			l.SetState(id, model.StateFound)
			rec.Recordf(l, 3, "Key %d found at position %d", key, i)
			rec.SetResult(strconv.Itoa(i))
			return rec.Finish(l), nil
		}
		rec.Record(l, 4)
	}
	l.ResetStates()
	rec.Recordf(l, 5, "Key %d not found", key)
	return rec.Finish(l), nil
}

// walkTo moves a current marker from the head to position stop (or to the
// tail when stop is negative or past the end) and returns that node.
func walkTo(l *model.LinkedList, rec *trace.Recorder, stop, startLine, stepLine int) model.ElementID {
	cur := l.Head
	l.SetState(cur, model.StateCurrent)
	rec.Record(l, startLine)
	for i := 0; stop < 0 || i < stop; i++ {
		n, _ := l.Node(cur)
		if n.Next == model.NoElement {
			break
		}
		l.SetState(cur, model.StateDefault)
		cur = n.Next
		l.SetState(cur, model.StateCurrent)
		rec.Record(l, stepLine)
	}
	return cur
}

func indexOf(l *model.LinkedList, id model.ElementID) int {
	for i, x := range l.IDs() {
		if x == id {
			return i
		}
	}
	return -1
}

func declineEmpty(op string, l *model.LinkedList, rec *trace.Recorder, line int) (*trace.Trace, error) {
	rec.Recordf(l, line, "%s", noticeListEmpty)
	return rec.Finish(l), model.EmptyError(op, model.KindLinkedList, noticeListEmpty)
}
