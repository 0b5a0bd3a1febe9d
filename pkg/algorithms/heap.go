package algorithms

import (
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

const noticeHeapEmpty = "Heap is empty"

// siftLines maps sift-down sub-steps to listing lines.
type siftLines struct {
	current, left, right, swap int
}

func startHeap(op string, listing trace.Listing, in *model.Heap) (*model.Heap, *trace.Recorder, Comparator[int]) {
	h := in.Clone().(*model.Heap)
	h.ResetStates()
	rec := trace.NewRecorder(op, model.KindHeap, listing)
	rec.Record(h, 0)
	return h, rec, ForOrder[int](h.Order)
}

func declineEmptyHeap(op string, h *model.Heap, rec *trace.Recorder, line int) (*trace.Trace, error) {
	rec.Recordf(h, line, "%s", noticeHeapEmpty)
	return rec.Finish(h), model.EmptyError(op, model.KindHeap, noticeHeapEmpty)
}

// HeapInsert appends v and sifts it up while it beats its parent.
func HeapInsert(in *model.Heap, v int) (*trace.Trace, error) {
	h, rec, better := startHeap("insert", HeapInsertListing, in)
	h.Push(v)
	i := h.Len() - 1
	h.SetState(i, model.StateHighlighted)
	rec.Recordf(h, 1, "Appended %d", v)
	rec.Record(h, 2)

	for i > 0 {
		rec.Record(h, 3)
		p := model.HeapParent(i)
		h.SetState(i, model.StateComparing)
		h.SetState(p, model.StateComparing)
		rec.Record(h, 5)
		if !better(h.Items[i].Value, h.Items[p].Value) {
			h.SetState(i, model.StateDefault)
			h.SetState(p, model.StateDefault)
			rec.Record(h, 7)
			break
		}
		h.SetState(i, model.StateSwapping)
		h.SetState(p, model.StateSwapping)
		h.Swap(i, p)
		rec.Record(h, 6)
		h.SetState(i, model.StateDefault)
		h.SetState(p, model.StateDefault)
		i = p
	}

	h.ResetStates()
	rec.Recordf(h, trace.NoLine, "Inserted %d", v)
	return rec.Finish(h), nil
}

// HeapDeleteRoot swaps the root with the last slot, removes it and sifts
// the new root down.
func HeapDeleteRoot(in *model.Heap) (*trace.Trace, error) {
	h, rec, better := startHeap("deleteRoot", HeapDeleteListing, in)
	if h.Len() == 0 {
		return declineEmptyHeap("deleteRoot", h, rec, 1)
	}
	rec.Record(h, 1)
	root := h.Items[0].Value
	h.SetState(0, model.StateHighlighted)
	rec.Record(h, 2)

	last := h.Len() - 1
	if last > 0 {
		h.SetState(0, model.StateSwapping)
		h.SetState(last, model.StateSwapping)
		rec.Record(h, 3)
		h.Swap(0, last)
		h.SetState(0, model.StateDefault)
	}
	h.SetState(last, model.StateDeleted)
	rec.Record(h, 3)
	h.Items = h.Items[:last]
	rec.Record(h, 3)

	siftDown(h, rec, better, 0, h.Len(), siftLines{4, 4, 4, 4})
	h.ResetStates()
	rec.SetResult(strconv.Itoa(root))
	rec.Recordf(h, 5, "Deleted root %d", root)
	return rec.Finish(h), nil
}

// HeapPeek highlights the root without changing the heap.
func HeapPeek(in *model.Heap) (*trace.Trace, error) {
	h, rec, _ := startHeap("peek", HeapPeekListing, in)
	if h.Len() == 0 {
		return declineEmptyHeap("peek", h, rec, 1)
	}
	rec.Record(h, 1)
	h.SetState(0, model.StateHighlighted)
	rec.Recordf(h, 2, "Root is %d", h.Items[0].Value)
	rec.SetResult(strconv.Itoa(h.Items[0].Value))
	h.ResetStates()
	return rec.Finish(h), nil
}

// BuildHeap sifts down every non-leaf slot from the last one to the root.
func BuildHeap(in *model.Heap) (*trace.Trace, error) {
	h, rec, better := startHeap("buildHeap", BuildHeapListing, in)
	buildHeap(h, rec, better, 1, siftLines{4, 5, 6, 8})
	h.ResetStates()
	rec.Recordf(h, trace.NoLine, "Heap built: %s", joinInts(h.Values()))
	return rec.Finish(h), nil
}

// HeapSortHeap extracts the root repeatedly into a shrinking suffix and
// prepends each extracted value to the result. The heap itself is left as
// it was.
func HeapSortHeap(in *model.Heap) (*trace.Trace, error) {
	h, rec, better := startHeap("heapSort", HeapSortHeapListing, in)
	if h.Len() == 0 {
		return declineEmptyHeap("heapSort", h, rec, trace.NoLine)
	}
	buildHeap(h, rec, better, 1, siftLines{1, 1, 1, 1})
	rec.Record(h, 2)

	result := make([]int, 0, h.Len())
	for i := h.Len() - 1; i > 0; i-- {
		rec.Record(h, 3)
		h.SetState(0, model.StateSwapping)
		h.SetState(i, model.StateSwapping)
		rec.Record(h, 4)
		h.Swap(0, i)
		h.SetState(0, model.StateDefault)
		h.SetState(i, model.StateSorted)
		result = append([]int{h.Items[i].Value}, result...)
		rec.Record(h, 5)
		siftDown(h, rec, better, 0, i, siftLines{6, 6, 6, 6})
	}
	h.SetState(0, model.StateSorted)
	result = append([]int{h.Items[0].Value}, result...)
	rec.Record(h, 7)

	rec.SetResult(valueStrings(result)...)
	rec.Recordf(h, trace.NoLine, "Heap sort result: %s", strings.Join(valueStrings(result), ", "))
	final := in.Clone().(*model.Heap)
	final.ResetStates()
	return rec.Finish(final), nil
}

func buildHeap(h *model.Heap, rec *trace.Recorder, better Comparator[int], loopLine int, lines siftLines) {
	n := h.Len()
	for i := n/2 - 1; i >= 0; i-- {
		rec.Record(h, loopLine)
		siftDown(h, rec, better, i, n, lines)
	}
}

// siftDown moves slot i down within the first size slots until neither
// child is strictly better. Left is checked before right.
func siftDown(h *model.Heap, rec *trace.Recorder, better Comparator[int], i, size int, lines siftLines) {
	for i < size {
		best := i
		h.SetState(i, model.StateCurrent)
		rec.Record(h, lines.current)

		l, r := model.HeapLeft(i), model.HeapRight(i)
		if l < size {
			h.SetState(l, model.StateComparing)
			rec.Record(h, lines.left)
			if better(h.Items[l].Value, h.Items[best].Value) {
				best = l
			}
		}
		if r < size {
			h.SetState(r, model.StateComparing)
			rec.Record(h, lines.right)
			if better(h.Items[r].Value, h.Items[best].Value) {
				best = r
			}
		}

		if best == i {
			resetSlots(h, size, i, l, r)
			return
		}
		h.SetState(i, model.StateSwapping)
		h.SetState(best, model.StateSwapping)
		h.Swap(i, best)
		rec.Record(h, lines.swap)
		resetSlots(h, size, i, l, r)
		i = best
	}
}

func resetSlots(h *model.Heap, size int, slots ...int) {
	for _, s := range slots {
		if s < size {
			h.SetState(s, model.StateDefault)
		}
	}
}
