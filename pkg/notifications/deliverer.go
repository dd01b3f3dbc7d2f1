package notifications

import "context"

// Deliverer pushes a stored notification to the session's live listeners.
// Delivery is best effort; the notification is already persisted.
type Deliverer interface {
	Deliver(ctx context.Context, notif Notification) error
}

// NoOpDeliverer drops every notification. Sessions still see them through
// the list endpoint.
type NoOpDeliverer struct{}

func (*NoOpDeliverer) Deliver(context.Context, Notification) error { return nil }
