package ratelimiter_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrshare/pkg/ratelimiter"
)

var shares = ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Minute}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newMemoryBucket(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Bucket, *ratelimiter.MemoryStore, *clock) {
	t.Helper()
	clk := &clock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(0), ratelimiter.WithClock(clk.Now))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b, store, clk
}

func TestNewBucket_Config(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ratelimiter.Config
	}{
		{name: "zero capacity", cfg: ratelimiter.Config{RefillRate: 1, RefillInterval: time.Second}},
		{name: "zero rate", cfg: ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}},
		{name: "zero interval", cfg: ratelimiter.Config{Capacity: 1, RefillRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(0)), tt.cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}

	assert.True(t, shares.Enabled())
	assert.False(t, ratelimiter.Config{}.Enabled())
}

func TestBucket_Allow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("burst then deny", func(t *testing.T) {
		t.Parallel()
		b, _, _ := newMemoryBucket(t, shares)

		for want := 2; want >= 0; want-- {
			res, err := b.Allow(ctx, "session-a")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
			assert.Equal(t, want, res.Remaining)
			assert.Equal(t, 3, res.Limit)
		}

		res, err := b.Allow(ctx, "session-a")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
		assert.Equal(t, -1, res.Remaining)

		other, err := b.Allow(ctx, "session-b")
		require.NoError(t, err)
		assert.True(t, other.Allowed(), "Buckets are per key")
	})

	t.Run("denied requests spend nothing", func(t *testing.T) {
		t.Parallel()
		b, _, clk := newMemoryBucket(t, shares)

		_, err := b.AllowN(ctx, "s", 3)
		require.NoError(t, err)
		for range 5 {
			res, err := b.Allow(ctx, "s")
			require.NoError(t, err)
			assert.False(t, res.Allowed())
		}

		clk.Advance(time.Minute)
		res, err := b.Allow(ctx, "s")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, 0, res.Remaining)
	})

	t.Run("refill caps at capacity", func(t *testing.T) {
		t.Parallel()
		b, _, clk := newMemoryBucket(t, shares)

		_, err := b.AllowN(ctx, "s", 3)
		require.NoError(t, err)
		clk.Advance(24 * time.Hour)

		res, err := b.Allow(ctx, "s")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
	})

	t.Run("partial intervals carry over", func(t *testing.T) {
		t.Parallel()
		b, _, clk := newMemoryBucket(t, shares)
		start := clk.Now()

		_, err := b.AllowN(ctx, "s", 3)
		require.NoError(t, err)

		clk.Advance(90 * time.Second)
		res, err := b.Allow(ctx, "s")
		require.NoError(t, err)
		require.True(t, res.Allowed())
		assert.Equal(t, start.Add(2*time.Minute), res.ResetAt)

		// the half interval spent before the last refill still counts
		clk.Advance(30 * time.Second)
		res, err = b.Allow(ctx, "s")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("reset", func(t *testing.T) {
		t.Parallel()
		b, _, _ := newMemoryBucket(t, shares)

		_, err := b.AllowN(ctx, "s", 3)
		require.NoError(t, err)
		require.NoError(t, b.Reset(ctx, "s"))

		res, err := b.Allow(ctx, "s")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
	})

	t.Run("invalid token count", func(t *testing.T) {
		t.Parallel()
		b, _, _ := newMemoryBucket(t, shares)
		_, err := b.AllowN(ctx, "s", 0)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	})
}

func TestResult_RetryAfter(t *testing.T) {
	t.Parallel()

	ok := ratelimiter.Result{Remaining: 0, ResetAt: time.Now().Add(time.Minute)}
	assert.Zero(t, ok.RetryAfter())

	denied := ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(30 * time.Second)}
	assert.InDelta(t, 30, denied.RetryAfter().Seconds(), 1)

	late := ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(-time.Second)}
	assert.Zero(t, late.RetryAfter())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()
	b, _, _ := newMemoryBucket(t, ratelimiter.Config{Capacity: 10, RefillRate: 1, RefillInterval: time.Hour})

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := b.Allow(context.Background(), "shared")
			if assert.NoError(t, err) && res.Allowed() {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(10), allowed.Load())
}

func TestMemoryStore_Sweep(t *testing.T) {
	t.Parallel()

	clk := &clock{now: time.Now()}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(5*time.Millisecond), ratelimiter.WithClock(clk.Now))
	t.Cleanup(store.Close)

	_, _, err := store.Take(context.Background(), "stale", 1, shares)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	clk.Advance(2 * time.Hour)
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)

	store.Close()
	store.Close()
}
