package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/qrshare/pkg/logger"
)

// RedisBroadcaster publishes JSON encoded messages on a Redis channel, so
// subscribers connected to any process sharing the Redis server receive them.
type RedisBroadcaster[T any] struct {
	client  redis.UniversalClient
	channel string
	buffer  int
	log     *slog.Logger

	mu     sync.Mutex
	subs   map[*subscription[T]]struct{}
	closed bool
}

type RedisOption func(*redisOptions)

type redisOptions struct {
	log *slog.Logger
}

func WithRedisLogger(l *slog.Logger) RedisOption {
	return func(o *redisOptions) { o.log = l }
}

// NewRedisBroadcaster does not own client; Close leaves it open.
func NewRedisBroadcaster[T any](client redis.UniversalClient, channel string, bufferSize int, opts ...RedisOption) *RedisBroadcaster[T] {
	o := redisOptions{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &RedisBroadcaster[T]{
		client:  client,
		channel: channel,
		buffer:  bufferSize,
		log:     o.log,
		subs:    make(map[*subscription[T]]struct{}),
	}
}

// Subscribe waits for Redis to confirm the subscription, so a message
// published after it returns is not missed. A failed subscription is
// logged and reported as an already closed subscriber.
func (b *RedisBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return closedSubscription[T]()
	}

	ps := b.client.Subscribe(ctx, b.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		b.log.WarnContext(ctx, "Redis subscription failed",
			logger.Component("broadcast"),
			slog.String("channel", b.channel),
			logger.Error(err),
		)
		return closedSubscription[T]()
	}

	sub := newSubscription[T](b.buffer)
	sub.onClose = append(sub.onClose, func() {
		_ = ps.Close()
		b.mu.Lock()
		delete(b.subs, sub)
		b.mu.Unlock()
	})

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		_ = sub.Close()
		return sub
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go b.pump(ps.Channel(), sub)
	context.AfterFunc(ctx, func() { _ = sub.Close() })
	return sub
}

func (b *RedisBroadcaster[T]) pump(in <-chan *redis.Message, sub *subscription[T]) {
	defer sub.Close()
	for m := range in {
		var data T
		if err := json.Unmarshal([]byte(m.Payload), &data); err != nil {
			b.log.Warn("Dropping undecodable broadcast",
				logger.Component("broadcast"),
				slog.String("channel", b.channel),
				logger.Error(err),
			)
			continue
		}
		if !sub.offer(Message[T]{Data: data}) {
			return
		}
	}
}

func (b *RedisBroadcaster[T]) Broadcast(ctx context.Context, msg Message[T]) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return nil
	}

	payload, err := json.Marshal(msg.Data)
	if err != nil {
		return fmt.Errorf("broadcast: encode: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("broadcast: publish to %s: %w", b.channel, err)
	}
	return nil
}

// Close ends the local subscriptions. Subscribers in other processes are
// not affected.
func (b *RedisBroadcaster[T]) Close() error {
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
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	return nil
}
