package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrshare/pkg/broadcast"
	"github.com/dmitrymomot/qrshare/pkg/export"
	"github.com/dmitrymomot/qrshare/pkg/logger"
)

// DefaultTTL is how long a toast stays listed when the manager has no TTL set.
const DefaultTTL = 10 * time.Minute

// Manager orchestrates notification storage and delivery.
type Manager struct {
	storage   Storage
	deliverer Deliverer
	ttl       time.Duration
	logger    *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger for the Manager.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithTTL sets the lifetime given to notifications that have no expiry.
func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// NewManager creates a new notification manager.
func NewManager(storage Storage, deliverer Deliverer, opts ...ManagerOption) *Manager {
	if deliverer == nil {
		deliverer = &NoOpDeliverer{}
	}

	m := &Manager{
		storage:   storage,
		deliverer: deliverer,
		ttl:       DefaultTTL,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Send stores the notification, then pushes it to live listeners.
// Delivery is best effort: a stored notification is not rolled back.
func (m *Manager) Send(ctx context.Context, notif Notification) error {
	if notif.ID == "" {
		notif.ID = uuid.New().String()
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}
	if notif.ExpiresAt == nil {
		expires := notif.CreatedAt.Add(m.ttl)
		notif.ExpiresAt = &expires
	}

	if err := m.storage.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if err := m.deliverer.Deliver(ctx, notif); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to deliver notification, but it was stored successfully",
			slog.String("notification_id", notif.ID),
			logger.SessionID(notif.SessionID),
			logger.Error(err),
		)
	}

	return nil
}

func (m *Manager) List(ctx context.Context, sessionID string, opts ListOptions) ([]Notification, error) {
	return m.storage.List(ctx, sessionID, opts)
}

func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	return m.storage.Clear(ctx, sessionID)
}

type subscribable interface {
	Subscribe(ctx context.Context, sessionID string) broadcast.Subscriber[Notification]
}

// Subscribe opens a live stream of the session's notifications.
// It returns ErrStreamUnavailable when the deliverer cannot stream.
func (m *Manager) Subscribe(ctx context.Context, sessionID string) (broadcast.Subscriber[Notification], error) {
	s, ok := m.deliverer.(subscribable)
	if !ok {
		return nil, ErrStreamUnavailable
	}
	return s.Subscribe(ctx, sessionID), nil
}

// Notifier returns an export.Notifier that sends every notice to sessionID.
func (m *Manager) Notifier(sessionID string) export.Notifier {
	return export.NotifierFunc(func(ctx context.Context, n export.Notice) error {
		return m.Send(ctx, FromNotice(sessionID, n))
	})
}

// FromNotice converts an export notice into a session notification.
func FromNotice(sessionID string, n export.Notice) Notification {
	typ := TypeSuccess
	if n.Type == export.NoticeError {
		typ = TypeError
	}
	return Notification{
		SessionID: sessionID,
		Type:      typ,
		Message:   n.Message,
		Operation: string(n.Operation),
		Format:    string(n.Format),
		Filename:  n.Filename,
		URL:       n.URL,
	}
}
