package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type bucketState struct {
	tokens     int
	refilledAt time.Time
	lastSeen   time.Time
}

// MemoryStore keeps buckets in process. Buckets untouched for an hour are
// dropped by a background sweep.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketState
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	sweep time.Duration
	now   func() time.Time
}

// WithSweepInterval sets how often stale buckets are dropped, 0 disables
// the sweep.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.sweep = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) { o.now = now }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	o := memoryOptions{sweep: 5 * time.Minute, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	s := &MemoryStore{
		buckets: make(map[string]*bucketState),
		now:     o.now,
		stop:    make(chan struct{}),
	}
	if o.sweep > 0 {
		go s.sweep(o.sweep)
	}
	return s
}

func (s *MemoryStore) Take(_ context.Context, key string, n int, cfg Config) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.buckets[key]
	if !ok {
		b = &bucketState{tokens: cfg.Capacity, refilledAt: now}
		s.buckets[key] = b
	}
	b.tokens, b.refilledAt = cfg.refill(b.tokens, b.refilledAt, now)
	b.lastSeen = now

	resetAt := b.refilledAt.Add(cfg.RefillInterval)
	if b.tokens < n {
		return b.tokens - n, resetAt, nil
	}
	b.tokens -= n
	return b.tokens, resetAt, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.buckets, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of tracked buckets.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// Close stops the sweep. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.dropStale(time.Hour)
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) dropStale(age time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-age)
	for key, b := range s.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(s.buckets, key)
		}
	}
}
