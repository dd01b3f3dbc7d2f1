package notifications

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMissingID         = errors.New("notification ID is required")
	ErrMissingSessionID  = errors.New("session ID is required")
	ErrStreamUnavailable = errors.New("real-time delivery is not configured")
)

// Storage keeps the recent notifications of each session.
// Implementations cap the history per session and drop expired entries.
type Storage interface {
	// Create stores a new notification.
	Create(ctx context.Context, notif Notification) error

	// List returns notifications for a session, newest first.
	List(ctx context.Context, sessionID string, opts ListOptions) ([]Notification, error)

	// Clear removes all notifications of a session.
	Clear(ctx context.Context, sessionID string) error
}

// ListOptions provides filtering options for listing notifications.
type ListOptions struct {
	Limit int        // Maximum number of notifications to return (0 = no limit)
	Since *time.Time // If specified, only return notifications created after this time
}

func (o ListOptions) keep(n Notification) bool {
	if n.IsExpired() {
		return false
	}
	return o.Since == nil || n.CreatedAt.After(*o.Since)
}

func validate(n Notification) error {
	if n.ID == "" {
		return ErrMissingID
	}
	if n.SessionID == "" {
		return ErrMissingSessionID
	}
	return nil
}
