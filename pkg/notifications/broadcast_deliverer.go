package notifications

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/qrshare/pkg/broadcast"
	"github.com/dmitrymomot/qrshare/pkg/cache"
	"github.com/dmitrymomot/qrshare/pkg/logger"
)

// BroadcastDeliverer fans notifications out to the live subscribers of each session.
type BroadcastDeliverer struct {
	sessions        *cache.LRUCache[string, broadcast.Broadcaster[Notification]]
	bufferSize      int
	maxBroadcasters int
	logger          *slog.Logger
	factory         BroadcasterFactory
}

// BroadcasterFactory builds the broadcaster backing one session.
type BroadcasterFactory func(sessionID string, bufferSize int) broadcast.Broadcaster[Notification]

// WithBroadcasterFactory replaces the in-memory per-session broadcaster,
// e.g. with RedisBroadcasterFactory for multi-instance deployments.
func WithBroadcasterFactory(fn BroadcasterFactory) BroadcastDelivererOption {
	return func(b *BroadcastDeliverer) {
		if fn != nil {
			b.factory = fn
		}
	}
}

// RedisBroadcasterFactory publishes each session on channel prefix+sessionID.
func RedisBroadcasterFactory(client redis.UniversalClient, prefix string, log *slog.Logger) BroadcasterFactory {
	return func(sessionID string, bufferSize int) broadcast.Broadcaster[Notification] {
		return broadcast.NewRedisBroadcaster[Notification](client, prefix+sessionID, bufferSize,
			broadcast.WithRedisLogger(log))
	}
}

// BroadcastDelivererOption configures a BroadcastDeliverer.
type BroadcastDelivererOption func(*BroadcastDeliverer)

// WithBroadcastLogger sets the logger for the BroadcastDeliverer.
func WithBroadcastLogger(logger *slog.Logger) BroadcastDelivererOption {
	return func(b *BroadcastDeliverer) {
		b.logger = logger
	}
}

// WithMaxBroadcasters sets the maximum number of session broadcasters.
// When this limit is reached, the least recently used broadcaster is evicted.
// Default is 10,000 if not specified.
func WithMaxBroadcasters(limit int) BroadcastDelivererOption {
	return func(b *BroadcastDeliverer) {
		if limit > 0 {
			b.maxBroadcasters = limit
		}
	}
}

// NewBroadcastDeliverer creates a new broadcast-based deliverer.
func NewBroadcastDeliverer(bufferSize int, opts ...BroadcastDelivererOption) *BroadcastDeliverer {
	b := &BroadcastDeliverer{
		bufferSize:      bufferSize,
		maxBroadcasters: 10000,
		logger:          slog.Default(),
		factory: func(_ string, size int) broadcast.Broadcaster[Notification] {
			return broadcast.NewMemoryBroadcaster[Notification](size)
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	b.sessions = cache.NewLRUCache[string, broadcast.Broadcaster[Notification]](b.maxBroadcasters)

	// Evicted sessions lose their live streams; clients reconnect and resync from storage.
	b.sessions.SetEvictCallback(func(sessionID string, broadcaster broadcast.Broadcaster[Notification]) {
		if err := broadcaster.Close(); err != nil {
			b.logger.LogAttrs(context.Background(), slog.LevelError, "Failed to close evicted broadcaster",
				logger.SessionID(sessionID),
				logger.Error(err),
			)
		}
	})

	return b
}

func (d *BroadcastDeliverer) broadcaster(sessionID string) broadcast.Broadcaster[Notification] {
	b, _ := d.sessions.GetOrCreate(sessionID, func() broadcast.Broadcaster[Notification] {
		return d.factory(sessionID, d.bufferSize)
	})
	return b
}

func (d *BroadcastDeliverer) Deliver(ctx context.Context, notif Notification) error {
	return d.broadcaster(notif.SessionID).Broadcast(ctx, broadcast.Message[Notification]{Data: notif})
}

// Subscribe returns a subscriber for the session's notifications.
// The subscription ends when ctx is cancelled.
func (d *BroadcastDeliverer) Subscribe(ctx context.Context, sessionID string) broadcast.Subscriber[Notification] {
	return d.broadcaster(sessionID).Subscribe(ctx)
}

// Close closes all session broadcasters.
func (d *BroadcastDeliverer) Close() error {
	d.sessions.Clear()
	return nil
}
