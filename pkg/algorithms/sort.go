package algorithms

import (
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// Sort algorithm names accepted by Sort.
const (
	SortBubble    = "bubble"
	SortSelection = "selection"
	SortInsertion = "insertion"
	SortMerge     = "merge"
	SortQuick     = "quick"
	SortHeap      = "heap"
)

// SortAlgorithms lists the sort engines in menu order.
func SortAlgorithms() []string {
	return []string{SortBubble, SortSelection, SortInsertion, SortMerge, SortQuick, SortHeap}
}

type sortBody func(arr *model.Array, rec *trace.Recorder, before Comparator[int])

// Sort runs the named sort engine over a copy of in, ascending.
func Sort(algorithm string, in *model.Array) (*trace.Trace, error) {
	switch algorithm {
	case SortBubble:
		return BubbleSort(in), nil
	case SortSelection:
		return SelectionSort(in), nil
	case SortInsertion:
		return InsertionSort(in), nil
	case SortMerge:
		return MergeSort(in), nil
	case SortQuick:
		return QuickSort(in), nil
	case SortHeap:
		return HeapSort(in), nil
	}
	return nil, model.InvalidInputError("sort", model.KindArray, "unknown sort algorithm %q", algorithm)
}

// BubbleSort animates bubble sort.
func BubbleSort(in *model.Array) *trace.Trace {
	return runSort(SortBubble, BubbleSortListing, in, bubbleSort)
}

// SelectionSort animates selection sort.
func SelectionSort(in *model.Array) *trace.Trace {
	return runSort(SortSelection, SelectionSortListing, in, selectionSort)
}

// InsertionSort animates insertion sort.
func InsertionSort(in *model.Array) *trace.Trace {
	return runSort(SortInsertion, InsertionSortListing, in, insertionSort)
}

// MergeSort animates top-down merge sort.
func MergeSort(in *model.Array) *trace.Trace {
	return runSort(SortMerge, MergeSortListing, in, mergeSort)
}

// QuickSort animates quick sort with the last element of each partition as pivot.
func QuickSort(in *model.Array) *trace.Trace {
	return runSort(SortQuick, QuickSortListing, in, quickSort)
}

// HeapSort animates in-place heap sort.
func HeapSort(in *model.Array) *trace.Trace {
	return runSort(SortHeap, HeapSortListing, in, heapSort)
}

func runSort(op string, listing trace.Listing, in *model.Array, body sortBody) *trace.Trace {
	arr := in.Clone().(*model.Array)
	arr.ResetStates()
	rec := trace.NewRecorder(op, model.KindArray, listing)

	if arr.Len() <= 1 {
		arr.ApplyTag(model.All, model.StateSorted)
		rec.Recordf(arr, trace.NoLine, "Array is already sorted")
		rec.SetResult(valueStrings(arr.Values())...)
		return rec.Finish(arr)
	}

	rec.Record(arr, 0)
	body(arr, rec, Ascending[int])
	arr.ApplyTag(model.All, model.StateSorted)
	rec.Recordf(arr, trace.NoLine, "Sorted: %s", joinInts(arr.Values()))
	rec.SetResult(valueStrings(arr.Values())...)
	return rec.Finish(arr)
}

func bubbleSort(arr *model.Array, rec *trace.Recorder, before Comparator[int]) {
	n := arr.Len()
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			arr.SetState(j, model.StateComparing)
			arr.SetState(j+1, model.StateComparing)
			rec.Record(arr, 4)

			if before(arr.Items[j+1].Value, arr.Items[j].Value) {
				arr.SetState(j, model.StateSwapping)
				arr.SetState(j+1, model.StateSwapping)
				arr.Swap(j, j+1)
				rec.Record(arr, 5)
			}
			arr.SetState(j, model.StateDefault)
			arr.SetState(j+1, model.StateDefault)
		}
		arr.SetState(n-i-1, model.StateSorted)
		rec.Record(arr, 6)
	}
	arr.SetState(0, model.StateSorted)
	rec.Record(arr, 7)
}

func selectionSort(arr *model.Array, rec *trace.Recorder, before Comparator[int]) {
	n := arr.Len()
	for i := 0; i < n-1; i++ {
		minIdx := i
		arr.SetState(i, model.StateCurrent)
		rec.Record(arr, 2)

		for j := i + 1; j < n; j++ {
			arr.SetState(j, model.StateComparing)
			rec.Record(arr, 4)
			if before(arr.Items[j].Value, arr.Items[minIdx].Value) {
				if minIdx != i {
					arr.SetState(minIdx, model.StateDefault)
				}
				minIdx = j
				arr.SetState(j, model.StateMin)
				rec.Record(arr, 5)
				continue
			}
			arr.SetState(j, model.StateDefault)
		}

		if minIdx != i {
			arr.SetState(i, model.StateSwapping)
			arr.SetState(minIdx, model.StateSwapping)
			arr.Swap(i, minIdx)
			rec.Record(arr, 6)
			arr.SetState(minIdx, model.StateDefault)
		}
		arr.SetState(i, model.StateSorted)
		rec.Record(arr, 7)
	}
	arr.SetState(n-1, model.StateSorted)
	rec.Record(arr, 8)
}

// insertionSort shifts by swapping neighbours so every element keeps its
// identity while the key walks left.
func insertionSort(arr *model.Array, rec *trace.Recorder, before Comparator[int]) {
	n := arr.Len()
	arr.SetState(0, model.StateSorted)
	rec.Record(arr, 1)

	for i := 1; i < n; i++ {
		arr.SetState(i, model.StateCurrent)
		rec.Record(arr, 3)

		j := i
		for j > 0 {
			arr.SetState(j-1, model.StateComparing)
			rec.Record(arr, 5)
			if !before(arr.Items[j].Value, arr.Items[j-1].Value) {
				arr.SetState(j-1, model.StateSorted)
				break
			}
			arr.Swap(j-1, j)
			arr.SetState(j, model.StateSorted)
			rec.Record(arr, 6)
			j--
		}
		arr.SetState(j, model.StateSorted)
		rec.Record(arr, 8)
	}
}

func mergeSort(arr *model.Array, rec *trace.Recorder, before Comparator[int]) {
	var sortRange func(lo, hi int)
	sortRange = func(lo, hi int) {
		if lo >= hi {
			arr.SetState(lo, model.StateSorted)
			rec.Record(arr, 1)
			return
		}
		mid := (lo + hi) / 2
		rec.Record(arr, 2)
		sortRange(lo, mid)
		sortRange(mid+1, hi)
		merge(arr, rec, before, lo, mid, hi)
	}
	sortRange(0, arr.Len()-1)
}

// merge keeps the range a permutation at every frame: merged prefix, then
// what is left of the left buffer, then what is left of the right buffer.
func merge(arr *model.Array, rec *trace.Recorder, before Comparator[int], lo, mid, hi int) {
	left := append([]model.Item(nil), arr.Items[lo:mid+1]...)
	right := append([]model.Item(nil), arr.Items[mid+1:hi+1]...)
	arr.SetRange(lo, hi, model.StateComparing)
	rec.Record(arr, 7)

	merged := make([]model.Item, 0, hi-lo+1)
	layout := func() {
		k := lo
		for _, group := range [][]model.Item{merged, left, right} {
			for _, it := range group {
				arr.Items[k] = it
				k++
			}
		}
	}

	for len(left) > 0 && len(right) > 0 {
		var next model.Item
		line := 9
		if !before(right[0].Value, left[0].Value) {
			next, left = left[0], left[1:]
		} else {
			next, right = right[0], right[1:]
			line = 10
		}
		next.State = model.StateCurrent
		merged = append(merged, next)
		layout()
		rec.Record(arr, line)
	}
	for _, rest := range [][]model.Item{left, right} {
		for _, it := range rest {
			it.State = model.StateCurrent
			merged = append(merged, it)
		}
	}
	left, right = nil, nil
	layout()
	rec.Record(arr, 11)

	arr.SetRange(lo, hi, model.StateSorted)
	rec.Record(arr, 5)
}

func quickSort(arr *model.Array, rec *trace.Recorder, before Comparator[int]) {
	var sortRange func(lo, hi int)
	sortRange = func(lo, hi int) {
		if lo > hi {
			return
		}
		if lo == hi {
			arr.SetState(lo, model.StateSorted)
			rec.Record(arr, 1)
			return
		}
		p := partition(arr, rec, before, lo, hi)
		rec.Record(arr, 3)
		sortRange(lo, p-1)
		rec.Record(arr, 4)
		sortRange(p+1, hi)
	}
	sortRange(0, arr.Len()-1)
}

func partition(arr *model.Array, rec *trace.Recorder, before Comparator[int], lo, hi int) int {
	arr.SetState(hi, model.StatePivot)
	rec.Record(arr, 6)
	pivot := arr.Items[hi].Value

	i := lo - 1
	for j := lo; j < hi; j++ {
		arr.SetState(j, model.StateComparing)
		rec.Record(arr, 9)
		if before(arr.Items[j].Value, pivot) {
			i++
			if i != j {
				arr.SetState(i, model.StateSwapping)
				arr.SetState(j, model.StateSwapping)
				arr.Swap(i, j)
				rec.Record(arr, 10)
				arr.SetState(i, model.StateDefault)
			}
		}
		arr.SetState(j, model.StateDefault)
	}

	if i+1 != hi {
		arr.SetState(i+1, model.StateSwapping)
		arr.SetState(hi, model.StateSwapping)
		arr.Swap(i+1, hi)
		rec.Record(arr, 11)
	}
	arr.SetRange(lo, hi, model.StateDefault)
	arr.SetState(i+1, model.StateSorted)
	rec.Record(arr, 12)
	return i + 1
}

func heapSort(arr *model.Array, rec *trace.Recorder, before Comparator[int]) {
	// Heap on the reversed comparator; extracting roots to the end yields
	// the comparator's order.
	better := func(a, b int) bool { return before(b, a) }
	n := arr.Len()
	for i := n/2 - 1; i >= 0; i-- {
		rec.Record(arr, 2)
		heapify(arr, rec, better, n, i)
	}
	for i := n - 1; i > 0; i-- {
		arr.SetState(0, model.StateSwapping)
		arr.SetState(i, model.StateSwapping)
		rec.Record(arr, 4)
		arr.Swap(0, i)
		arr.SetState(i, model.StateSorted)
		arr.SetState(0, model.StateDefault)
		rec.Record(arr, 4)
		heapify(arr, rec, better, i, 0)
	}
	arr.SetState(0, model.StateSorted)
	rec.Record(arr, 5)
}

func heapify(arr *model.Array, rec *trace.Recorder, better Comparator[int], size, i int) {
	for {
		largest := i
		arr.SetState(i, model.StateCurrent)
		rec.Record(arr, 7)

		l, r := model.HeapLeft(i), model.HeapRight(i)
		if l < size {
			arr.SetState(l, model.StateComparing)
			rec.Record(arr, 8)
			if better(arr.Items[l].Value, arr.Items[largest].Value) {
				largest = l
			}
		}
		if r < size {
			arr.SetState(r, model.StateComparing)
			rec.Record(arr, 9)
			if better(arr.Items[r].Value, arr.Items[largest].Value) {
				largest = r
			}
		}

		if largest == i {
			resetHeapSlots(arr, size, i, l, r)
			return
		}
		arr.SetState(i, model.StateSwapping)
		arr.SetState(largest, model.StateSwapping)
		arr.Swap(i, largest)
		rec.Record(arr, 11)
		resetHeapSlots(arr, size, i, l, r)
		i = largest
	}
}

func resetHeapSlots(arr *model.Array, size int, slots ...int) {
	for _, s := range slots {
		if s < size {
			arr.SetState(s, model.StateDefault)
		}
	}
}

func valueStrings(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}

func joinInts(values []int) string {
	return strings.Join(valueStrings(values), ", ")
}
