package model

// Entry is one string element of a stack or queue.
type Entry struct {
	ID    ElementID   `json:"id"`
	Value string      `json:"value"`
	State VisualState `json:"state"`
}

// Stack is a LIFO sequence; the top is the last entry.
type Stack struct {
	Items []Entry `json:"items"`
	ids   idSeq
}

// NewStack creates a stack with values pushed in order.
func NewStack(values ...string) *Stack {
	s := &Stack{}
	for _, v := range values {
		s.Push(v)
	}
	return s
}

func (s *Stack) Kind() Kind { return KindStack }
func (s *Stack) Len() int   { return len(s.Items) }

func (s *Stack) Clone() Structure {
	c := *s
	c.Items = append([]Entry(nil), s.Items...)
	return &c
}

func (s *Stack) Elements() []Element { return entryElements(s.Items) }

func (s *Stack) ApplyTag(pred func(Element) bool, tag VisualState) int {
	return tagEntries(s.Items, pred, tag)
}

func (s *Stack) ResetStates() { s.ApplyTag(All, StateDefault) }

// Push places value on top and returns its id.
func (s *Stack) Push(value string) ElementID {
	id := s.ids.next()
	s.Items = append(s.Items, Entry{ID: id, Value: value, State: StateDefault})
	return id
}

// Pop removes the top entry.
func (s *Stack) Pop() (Entry, error) {
	if len(s.Items) == 0 {
		return Entry{}, EmptyError("pop", KindStack, "Stack Underflow")
	}
	top := s.Items[len(s.Items)-1]
	s.Items = s.Items[:len(s.Items)-1]
	return top, nil
}

// Top returns the index of the top entry, or -1 when empty.
func (s *Stack) Top() int { return len(s.Items) - 1 }

// Values returns payloads bottom to top.
func (s *Stack) Values() []string { return entryValues(s.Items) }

// Queue is a FIFO sequence; the front is the first entry.
type Queue struct {
	Items []Entry `json:"items"`
	ids   idSeq
}

// NewQueue creates a queue with values enqueued in order.
func NewQueue(values ...string) *Queue {
	q := &Queue{}
	for _, v := range values {
		q.Enqueue(v)
	}
	return q
}

func (q *Queue) Kind() Kind { return KindQueue }
func (q *Queue) Len() int   { return len(q.Items) }

func (q *Queue) Clone() Structure {
	c := *q
	c.Items = append([]Entry(nil), q.Items...)
	return &c
}

func (q *Queue) Elements() []Element { return entryElements(q.Items) }

func (q *Queue) ApplyTag(pred func(Element) bool, tag VisualState) int {
	return tagEntries(q.Items, pred, tag)
}

func (q *Queue) ResetStates() { q.ApplyTag(All, StateDefault) }

// Enqueue appends value at the rear and returns its id.
func (q *Queue) Enqueue(value string) ElementID {
	id := q.ids.next()
	q.Items = append(q.Items, Entry{ID: id, Value: value, State: StateDefault})
	return id
}

// Dequeue removes the front entry.
func (q *Queue) Dequeue() (Entry, error) {
	if len(q.Items) == 0 {
		return Entry{}, EmptyError("dequeue", KindQueue, "Queue Underflow")
	}
	front := q.Items[0]
	q.Items = append([]Entry(nil), q.Items[1:]...)
	return front, nil
}

// Values returns payloads front to rear.
func (q *Queue) Values() []string { return entryValues(q.Items) }

func entryElements(items []Entry) []Element {
	out := make([]Element, len(items))
	for i, it := range items {
		out[i] = Element{ID: it.ID, Label: it.Value, State: it.State}
	}
	return out
}

func entryValues(items []Entry) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out
}

func tagEntries(items []Entry, pred func(Element) bool, tag VisualState) int {
	n := 0
	for i, it := range items {
		if pred(Element{ID: it.ID, Label: it.Value, State: it.State}) {
			items[i].State = tag
			n++
		}
	}
	return n
}
