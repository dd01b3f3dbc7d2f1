package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster delivers within a single process.
type MemoryBroadcaster[T any] struct {
	mu     sync.Mutex
	subs   map[*subscription[T]]struct{}
	buffer int
	closed bool
}

// NewMemoryBroadcaster gives every subscriber a channel buffer of bufferSize,
// at least one.
func NewMemoryBroadcaster[T any](bufferSize int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{subs: make(map[*subscription[T]]struct{}), buffer: bufferSize}
}

// Subscribe returns an already closed subscriber once the broadcaster is closed.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return closedSubscription[T]()
	}

	sub := newSubscription[T](b.buffer)
	sub.onClose = append(sub.onClose, func() { b.remove(sub) })
	b.subs[sub] = struct{}{}
	context.AfterFunc(ctx, func() { _ = sub.Close() })
	return sub
}

func (b *MemoryBroadcaster[T]) Broadcast(_ context.Context, msg Message[T]) error {
	for _, sub := range b.snapshot() {
		if !sub.offer(msg) {
			_ = sub.Close()
		}
	}
	return nil
}

// Close ends every subscription. It is idempotent.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := make([]*subscription[T], 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	clear(b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	return nil
}

func (b *MemoryBroadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *MemoryBroadcaster[T]) snapshot() []*subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := make([]*subscription[T], 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	return subs
}

func (b *MemoryBroadcaster[T]) remove(sub *subscription[T]) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}
