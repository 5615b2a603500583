package render

import (
	"context"
	"sync"
	"sync/atomic"
)

// DefaultSubscriberBuffer is the per-subscriber channel capacity.
const DefaultSubscriberBuffer = 1024

// Broadcaster fans events out to any number of subscribers. Emit never
// blocks: a subscriber whose buffer is full misses the event, which is
// counted in Dropped.
type Broadcaster struct {
	mu      sync.Mutex
	subs    map[int]chan Event
	next    int
	buffer  int
	dropped atomic.Int64
}

// NewBroadcaster creates a broadcaster whose subscribers buffer up to
// buffer events. A non-positive buffer uses DefaultSubscriberBuffer.
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Broadcaster{subs: make(map[int]chan Event), buffer: buffer}
}

// Subscribe registers a new subscriber. The returned cancel function
// unregisters it and closes the channel; it is safe to call more than once.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
		})
	}
}

// Emit delivers ev to every current subscriber.
func (b *Broadcaster) Emit(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
	return nil
}

// Subscribers returns the number of live subscribers.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because a subscriber
// was too slow.
func (b *Broadcaster) Dropped() int64 {
	return b.dropped.Load()
}

// Close unregisters every subscriber.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

var _ Sink = (*Broadcaster)(nil)
