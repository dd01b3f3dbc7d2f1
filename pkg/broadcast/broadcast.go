package broadcast

import (
	"context"
	"sync"
)

type Message[T any] struct {
	Data T
}

// Subscriber is one live subscription. The channel returned by Receive is
// closed when the subscription ends, either through Close, cancellation of
// the Subscribe context, or because the subscriber fell behind.
type Subscriber[T any] interface {
	Receive(ctx context.Context) <-chan Message[T]
	Close() error
}

// Broadcaster fans messages out to every current subscriber. Broadcast never
// blocks on a slow subscriber; that subscriber is dropped instead.
type Broadcaster[T any] interface {
	Subscribe(ctx context.Context) Subscriber[T]
	Broadcast(ctx context.Context, msg Message[T]) error
	Close() error
}

type subscription[T any] struct {
	ch      chan Message[T]
	mu      sync.RWMutex
	closed  bool
	once    sync.Once
	onClose []func()
}

func newSubscription[T any](buffer int) *subscription[T] {
	return &subscription[T]{ch: make(chan Message[T], max(buffer, 1))}
}

func (s *subscription[T]) Receive(context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscription[T]) Close() error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
		for _, fn := range s.onClose {
			fn()
		}
	})
	return nil
}

// offer reports false when the subscription is closed or its buffer is full.
func (s *subscription[T]) offer(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}

func closedSubscription[T any]() *subscription[T] {
	s := newSubscription[T](1)
	_ = s.Close()
	return s
}
