package model

import "strconv"

// Item is one numeric element of an array or heap.
type Item struct {
	ID    ElementID   `json:"id"`
	Value int         `json:"value"`
	State VisualState `json:"state"`
}

// Array is the input of the sort engines.
type Array struct {
	Items []Item `json:"items"`
	ids   idSeq
}

// NewArray creates an array holding values in order.
func NewArray(values ...int) *Array {
	a := &Array{Items: make([]Item, 0, len(values))}
	for _, v := range values {
		a.Items = append(a.Items, Item{ID: a.ids.next(), Value: v, State: StateDefault})
	}
	return a
}

func (a *Array) Kind() Kind { return KindArray }
func (a *Array) Len() int   { return len(a.Items) }

func (a *Array) Clone() Structure {
	c := *a
	c.Items = append([]Item(nil), a.Items...)
	return &c
}

func (a *Array) Elements() []Element {
	return itemElements(a.Items)
}

func (a *Array) ApplyTag(pred func(Element) bool, tag VisualState) int {
	return tagItems(a.Items, pred, tag)
}

func (a *Array) ResetStates() {
	a.ApplyTag(All, StateDefault)
}

// Values returns the payloads in index order.
func (a *Array) Values() []int {
	return itemValues(a.Items)
}

// Swap exchanges the elements at i and j, identities included.
func (a *Array) Swap(i, j int) {
	a.Items[i], a.Items[j] = a.Items[j], a.Items[i]
}

// SetState tags the element at index i.
func (a *Array) SetState(i int, s VisualState) {
	a.Items[i].State = s
}

// SetRange tags every element in [lo, hi].
func (a *Array) SetRange(lo, hi int, s VisualState) {
	for i := lo; i <= hi && i < len(a.Items); i++ {
		a.Items[i].State = s
	}
}

func itemElements(items []Item) []Element {
	out := make([]Element, len(items))
	for i, it := range items {
		out[i] = Element{ID: it.ID, Label: strconv.Itoa(it.Value), State: it.State}
	}
	return out
}

func itemValues(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out
}

func tagItems(items []Item, pred func(Element) bool, tag VisualState) int {
	n := 0
	for i, it := range items {
		if pred(Element{ID: it.ID, Label: strconv.Itoa(it.Value), State: it.State}) {
			items[i].State = tag
			n++
		}
	}
	return n
}
