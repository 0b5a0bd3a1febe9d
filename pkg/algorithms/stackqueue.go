package algorithms

import (
	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// Push animates create-item, attach-to-top and settle.
func Push(in *model.Stack, value string) *trace.Trace {
	s := in.Clone().(*model.Stack)
	s.ResetStates()
	rec := trace.NewRecorder("push", model.KindStack, PushListing)
	rec.Record(s, 0)

	s.Push(value)
	top := s.Top()
	s.Items[top].State = model.StateInserted
	rec.Recordf(s, 1, "Creating item %s", value)
	rec.Record(s, 2)
	s.Items[top].State = model.StateHighlighted
	rec.Recordf(s, 3, "Placing %s on top", value)
	s.Items[top].State = model.StateDefault
	rec.Recordf(s, 4, "Pushed %s", value)
	rec.SetResult(value)
	return rec.Finish(s)
}

// Pop animates removal of the top item. An empty stack yields an
// underflow error and leaves the stack unchanged.
func Pop(in *model.Stack) (*trace.Trace, error) {
	s := in.Clone().(*model.Stack)
	s.ResetStates()
	rec := trace.NewRecorder("pop", model.KindStack, PopListing)
	rec.Record(s, 0)
	rec.Record(s, 1)

	if s.Len() == 0 {
		_, err := s.Pop()
		rec.Recordf(s, 2, "%s", model.NoticeOf(err))
		return rec.Finish(s), err
	}

	top := s.Top()
	s.Items[top].State = model.StateHighlighted
	rec.Record(s, 3)
	s.Items[top].State = model.StateDeleted
	rec.Record(s, 4)
	item, err := s.Pop()
	if err != nil {
		return rec.Finish(in), err
	}
	rec.Recordf(s, 5, "Popped %s", item.Value)
	rec.SetResult(item.Value)
	return rec.Finish(s), nil
}

// Enqueue animates create-item, attach-to-rear and settle.
func Enqueue(in *model.Queue, value string) *trace.Trace {
	q := in.Clone().(*model.Queue)
	q.ResetStates()
	rec := trace.NewRecorder("enqueue", model.KindQueue, EnqueueListing)
	rec.Record(q, 0)

	q.Enqueue(value)
	rear := q.Len() - 1
	q.Items[rear].State = model.StateInserted
	rec.Recordf(q, 1, "Creating item %s", value)
	q.Items[rear].State = model.StateHighlighted
	rec.Recordf(q, 2, "Placing %s at the rear", value)
	q.Items[rear].State = model.StateDefault
	rec.Recordf(q, 3, "Enqueued %s", value)
	rec.SetResult(value)
	return rec.Finish(q)
}

// Dequeue animates removal of the front item. An empty queue yields an
// underflow error and leaves the queue unchanged.
func Dequeue(in *model.Queue) (*trace.Trace, error) {
	q := in.Clone().(*model.Queue)
	q.ResetStates()
	rec := trace.NewRecorder("dequeue", model.KindQueue, DequeueListing)
	rec.Record(q, 0)
	rec.Record(q, 1)

	if q.Len() == 0 {
		_, err := q.Dequeue()
		rec.Recordf(q, 2, "%s", model.NoticeOf(err))
		return rec.Finish(q), err
	}

	q.Items[0].State = model.StateHighlighted
	rec.Record(q, 3)
	q.Items[0].State = model.StateDeleted
	rec.Record(q, 4)
	item, err := q.Dequeue()
	if err != nil {
		return rec.Finish(in), err
	}
	rec.Recordf(q, 5, "Dequeued %s", item.Value)
	rec.SetResult(item.Value)
	return rec.Finish(q), nil
}
