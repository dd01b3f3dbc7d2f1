package notifications

import (
	"context"
	"slices"
	"sync"
)

// DefaultMaxPerSession is the history cap used when none is configured.
const DefaultMaxPerSession = 50

// MemoryStorage is an in-memory implementation of the Storage interface.
// Each session keeps at most maxPerSession notifications; the oldest are dropped first.
type MemoryStorage struct {
	notifications map[string][]Notification // sessionID -> notifications, oldest first
	maxPerSession int
	mu            sync.RWMutex
}

// MemoryStorageOption configures a MemoryStorage.
type MemoryStorageOption func(*MemoryStorage)

// WithMemoryMaxPerSession sets the per-session history cap.
func WithMemoryMaxPerSession(n int) MemoryStorageOption {
	return func(s *MemoryStorage) {
		if n > 0 {
			s.maxPerSession = n
		}
	}
}

// NewMemoryStorage creates a new in-memory notification storage.
func NewMemoryStorage(opts ...MemoryStorageOption) *MemoryStorage {
	s := &MemoryStorage{
		notifications: make(map[string][]Notification),
		maxPerSession: DefaultMaxPerSession,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStorage) Create(ctx context.Context, notif Notification) error {
	if err := validate(notif); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.notifications[notif.SessionID]
	// Expired entries are pruned on write so idle sessions do not grow.
	list = slices.DeleteFunc(list, func(n Notification) bool { return n.IsExpired() })
	list = append(list, notif)
	if over := len(list) - s.maxPerSession; over > 0 {
		list = slices.Delete(list, 0, over)
	}
	s.notifications[notif.SessionID] = list
	return nil
}

func (s *MemoryStorage) List(ctx context.Context, sessionID string, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.notifications[sessionID]
	result := make([]Notification, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		if !opts.keep(stored[i]) {
			continue
		}
		result = append(result, stored[i])
		if opts.Limit > 0 && len(result) == opts.Limit {
			break
		}
	}
	return result, nil
}

func (s *MemoryStorage) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notifications, sessionID)
	return nil
}
