// Package broadcast fans typed messages out to live subscribers.
//
// MemoryBroadcaster works inside one process. RedisBroadcaster uses Redis
// pub/sub so that a notification raised by one qrshare instance reaches a
// browser streaming from another. Both drop a subscriber whose buffer is
// full instead of blocking the publisher; the subscriber observes a closed
// channel and is expected to reconnect.
//
//	b := broadcast.NewMemoryBroadcaster[notifications.Notification](16)
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//	for msg := range sub.Receive(ctx) {
//		render(msg.Data)
//	}
package broadcast
