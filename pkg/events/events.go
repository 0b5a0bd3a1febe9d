// Package events fans rendered frames out to live subscribers, one topic
// per session.
package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// ErrClosed is returned by Subscribe after Close.
var ErrClosed = errors.New("events: broker closed")

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 64

// FrameEvent is one frame shown by a session's player. Index is the
// frame's position in the trace, or -1 for the cleared view after a reset.
type FrameEvent struct {
	SessionID string      `json:"session_id"`
	Operation string      `json:"operation"`
	Index     int         `json:"index"`
	Frames    int         `json:"frames"`
	Frame     trace.Frame `json:"frame"`
}

// Broker delivers messages to the subscribers of a topic. Publish never
// blocks: a subscriber whose queue is full misses the message.
type Broker[T any] struct {
	subscribers map[string]map[*Subscription[T]]struct{}
	mu          sync.RWMutex
	buffer      int
	shutdown    chan struct{}
	closeOnce   sync.Once
	closed      atomic.Bool
	dropped     atomic.Int64
}

// Subscription receives the messages of one topic until it is cancelled.
type Subscription[T any] struct {
	topic     string
	channel   chan T
	broker    *Broker[T]
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewBroker creates a broker whose subscribers queue up to buffer messages.
func NewBroker[T any](buffer int) *Broker[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broker[T]{
		subscribers: make(map[string]map[*Subscription[T]]struct{}),
		buffer:      buffer,
		shutdown:    make(chan struct{}),
	}
}

// Subscribe registers a subscription to topic. It ends when ctx is done,
// Unsubscribe is called or the broker closes; its channel is then closed.
func (b *Broker[T]) Subscribe(ctx context.Context, topic string) (*Subscription[T], error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription[T]{
		topic:   topic,
		channel: make(chan T, b.buffer),
		broker:  b,
		cancel:  cancel,
	}

	b.mu.Lock()
	if b.closed.Load() {
		b.mu.Unlock()
		cancel()
		return nil, ErrClosed
	}
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[*Subscription[T]]struct{})
	}
	b.subscribers[topic][sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-subCtx.Done():
			sub.Unsubscribe()
		case <-b.shutdown:
			cancel()
		}
	}()

	return sub, nil
}

// Publish sends msg to every subscriber of topic and returns how many
// received it.
func (b *Broker[T]) Publish(topic string, msg T) int {
	if b.closed.Load() {
		return 0
	}

	// Snapshot the topic; each send rechecks membership under the read lock.
	b.mu.RLock()
	subs := make([]*Subscription[T], 0, len(b.subscribers[topic]))
	for sub := range b.subscribers[topic] {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	delivered := 0
	for _, sub := range subs {
		if sub.send(msg) {
			delivered++
		} else {
			b.dropped.Add(1)
		}
	}
	return delivered
}

// SubscriberCount returns the number of subscribers of topic.
func (b *Broker[T]) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}

// Dropped returns how many messages were skipped because a subscriber's
// queue was full.
func (b *Broker[T]) Dropped() int64 {
	return b.dropped.Load()
}

// Close ends every subscription. Later publishes are ignored.
func (b *Broker[T]) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed.Store(true)
		for topic, subs := range b.subscribers {
			for sub := range subs {
				sub.close()
			}
			delete(b.subscribers, topic)
		}
		b.mu.Unlock()
		close(b.shutdown)
	})
}

// Channel returns the subscription's message channel.
func (s *Subscription[T]) Channel() <-chan T {
	return s.channel
}

// Unsubscribe removes the subscription and closes its channel.
func (s *Subscription[T]) Unsubscribe() {
	s.cancel()

	b := s.broker
	b.mu.Lock()
	if subs := b.subscribers[s.topic]; subs != nil {
		delete(subs, s)
		if len(subs) == 0 {
			delete(b.subscribers, s.topic)
		}
	}
	// Closing under the write lock keeps Publish from sending on a closed
	// channel: senders hold the read lock.
	s.close()
	b.mu.Unlock()
}

func (s *Subscription[T]) send(msg T) bool {
	s.broker.mu.RLock()
	defer s.broker.mu.RUnlock()
	if _, live := s.broker.subscribers[s.topic][s]; !live {
		return false
	}
	select {
	case s.channel <- msg:
		return true
	default:
		return false
	}
}

func (s *Subscription[T]) close() {
	s.closeOnce.Do(func() {
		close(s.channel)
	})
}
