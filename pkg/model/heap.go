package model

import "fmt"

// Heap is an array-backed binary heap. The parent/child relation is derived
// from indices: parent(i) = (i-1)/2, left(i) = 2i+1, right(i) = 2i+2.
type Heap struct {
	Order Order  `json:"order"`
	Items []Item `json:"items"`
	ids   idSeq
}

// NewHeap creates a heap holding values in the given slot order. The values
// are not reordered; use NewBuiltHeap when the heap property must hold.
func NewHeap(order Order, values ...int) *Heap {
	h := &Heap{Order: order, Items: make([]Item, 0, len(values))}
	for _, v := range values {
		h.Items = append(h.Items, Item{ID: h.ids.next(), Value: v, State: StateDefault})
	}
	return h
}

// NewBuiltHeap creates a heap from values and restores the heap property.
func NewBuiltHeap(order Order, values ...int) *Heap {
	h := NewHeap(order, values...)
	h.Heapify()
	return h
}

// Heapify sifts down every non-leaf slot, last to first, without recording
// anything. Element ids travel with their values.
func (h *Heap) Heapify() {
	n := len(h.Items)
	for i := n/2 - 1; i >= 0; i-- {
		for j := i; ; {
			best := j
			if l := HeapLeft(j); l < n && h.Better(h.Items[l].Value, h.Items[best].Value) {
				best = l
			}
			if r := HeapRight(j); r < n && h.Better(h.Items[r].Value, h.Items[best].Value) {
				best = r
			}
			if best == j {
				break
			}
			h.Swap(j, best)
			j = best
		}
	}
}

func (h *Heap) Kind() Kind { return KindHeap }
func (h *Heap) Len() int   { return len(h.Items) }

func (h *Heap) Clone() Structure {
	c := *h
	c.Items = append([]Item(nil), h.Items...)
	return &c
}

func (h *Heap) Elements() []Element {
	return itemElements(h.Items)
}

func (h *Heap) ApplyTag(pred func(Element) bool, tag VisualState) int {
	return tagItems(h.Items, pred, tag)
}

func (h *Heap) ResetStates() {
	h.ApplyTag(All, StateDefault)
}

// Values returns the payloads in slot order.
func (h *Heap) Values() []int {
	return itemValues(h.Items)
}

// Push appends value as a new last slot and returns its id.
func (h *Heap) Push(value int) ElementID {
	id := h.ids.next()
	h.Items = append(h.Items, Item{ID: id, Value: value, State: StateDefault})
	return id
}

// Swap exchanges slots i and j.
func (h *Heap) Swap(i, j int) {
	h.Items[i], h.Items[j] = h.Items[j], h.Items[i]
}

// SetState tags slot i.
func (h *Heap) SetState(i int, s VisualState) {
	h.Items[i].State = s
}

// Better reports whether a must sit above b under the heap's order.
// Equal values are never better than each other.
func (h *Heap) Better(a, b int) bool {
	if h.Order == MinHeap {
		return a < b
	}
	return a > b
}

// HeapParent returns the parent index of slot i.
func HeapParent(i int) int { return (i - 1) / 2 }

// HeapLeft returns the left child index of slot i.
func HeapLeft(i int) int { return 2*i + 1 }

// HeapRight returns the right child index of slot i.
func HeapRight(i int) int { return 2*i + 2 }

// CheckOrder verifies the heap property for every parent/child pair.
func (h *Heap) CheckOrder() error {
	for i := range h.Items {
		for _, c := range []int{HeapLeft(i), HeapRight(i)} {
			if c < len(h.Items) && h.Better(h.Items[c].Value, h.Items[i].Value) {
				return fmt.Errorf("heap order violated at %d: parent %d, child %d", i, h.Items[i].Value, h.Items[c].Value)
			}
		}
	}
	return nil
}
