package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storageFactory builds a fresh storage capped at max entries per session.
type storageFactory func(t *testing.T, max int) Storage

func storages() map[string]storageFactory {
	return map[string]storageFactory{
		"memory": func(t *testing.T, max int) Storage {
			return NewMemoryStorage(WithMemoryMaxPerSession(max))
		},
		"redis": func(t *testing.T, max int) Storage {
			srv := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return NewRedisStorage(client, WithRedisMaxPerSession(max))
		},
	}
}

func notice(session string, i int, createdAt time.Time) Notification {
	return Notification{
		ID:        fmt.Sprintf("n-%d", i),
		SessionID: session,
		Type:      TypeSuccess,
		Message:   fmt.Sprintf("message %d", i),
		CreatedAt: createdAt,
	}
}

func ids(list []Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.ID
	}
	return out
}

func TestStorage(t *testing.T) {
	for name, newStorage := range storages() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)

			t.Run("lists newest first", func(t *testing.T) {
				s := newStorage(t, 10)
				for i := range 3 {
					require.NoError(t, s.Create(ctx, notice("s1", i, base.Add(time.Duration(i)*time.Second))))
				}

				got, err := s.List(ctx, "s1", ListOptions{})
				require.NoError(t, err)
				assert.Equal(t, []string{"n-2", "n-1", "n-0"}, ids(got))
				assert.Equal(t, "message 2", got[0].Message)
				assert.Equal(t, TypeSuccess, got[0].Type)
			})

			t.Run("sessions are isolated", func(t *testing.T) {
				s := newStorage(t, 10)
				require.NoError(t, s.Create(ctx, notice("a", 1, base)))
				require.NoError(t, s.Create(ctx, notice("b", 2, base)))

				got, err := s.List(ctx, "a", ListOptions{})
				require.NoError(t, err)
				assert.Equal(t, []string{"n-1"}, ids(got))

				got, err = s.List(ctx, "unknown", ListOptions{})
				require.NoError(t, err)
				assert.Empty(t, got)
			})

			t.Run("caps history per session", func(t *testing.T) {
				s := newStorage(t, 2)
				for i := range 4 {
					require.NoError(t, s.Create(ctx, notice("s1", i, base.Add(time.Duration(i)*time.Second))))
				}

				got, err := s.List(ctx, "s1", ListOptions{})
				require.NoError(t, err)
				assert.Equal(t, []string{"n-3", "n-2"}, ids(got))
			})

			t.Run("limit and since", func(t *testing.T) {
				s := newStorage(t, 10)
				for i := range 5 {
					require.NoError(t, s.Create(ctx, notice("s1", i, base.Add(time.Duration(i)*time.Second))))
				}

				got, err := s.List(ctx, "s1", ListOptions{Limit: 2})
				require.NoError(t, err)
				assert.Equal(t, []string{"n-4", "n-3"}, ids(got))

				since := base.Add(2 * time.Second)
				got, err = s.List(ctx, "s1", ListOptions{Since: &since})
				require.NoError(t, err)
				assert.Equal(t, []string{"n-4", "n-3"}, ids(got))
			})

			t.Run("skips expired", func(t *testing.T) {
				s := newStorage(t, 10)
				expired := notice("s1", 1, base)
				past := time.Now().Add(-time.Second)
				expired.ExpiresAt = &past
				require.NoError(t, s.Create(ctx, expired))
				require.NoError(t, s.Create(ctx, notice("s1", 2, base)))

				got, err := s.List(ctx, "s1", ListOptions{})
				require.NoError(t, err)
				assert.Equal(t, []string{"n-2"}, ids(got))
			})

			t.Run("clear", func(t *testing.T) {
				s := newStorage(t, 10)
				require.NoError(t, s.Create(ctx, notice("s1", 1, base)))
				require.NoError(t, s.Clear(ctx, "s1"))

				got, err := s.List(ctx, "s1", ListOptions{})
				require.NoError(t, err)
				assert.Empty(t, got)
			})

			t.Run("validates identifiers", func(t *testing.T) {
				s := newStorage(t, 10)
				assert.ErrorIs(t, s.Create(ctx, Notification{SessionID: "s1"}), ErrMissingID)
				assert.ErrorIs(t, s.Create(ctx, Notification{ID: "x"}), ErrMissingSessionID)
			})
		})
	}
}

func TestRedisStorage_KeyLifecycle(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	s := NewRedisStorage(client, WithRedisKeyPrefix("test:"), WithRedisTTL(time.Minute))
	require.NoError(t, s.Create(context.Background(), notice("s1", 1, time.Now())))

	assert.True(t, srv.Exists("test:s1"))
	assert.Equal(t, time.Minute, srv.TTL("test:s1"))

	srv.FastForward(2 * time.Minute)
	got, err := s.List(context.Background(), "s1", ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStorage_Errors(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr(), MaxRetries: -1})
	defer client.Close()
	s := NewRedisStorage(client)

	t.Run("corrupt entry", func(t *testing.T) {
		_, err := srv.Lpush(DefaultRedisKeyPrefix+"bad", "{not json")
		require.NoError(t, err)

		_, err = s.List(context.Background(), "bad", ListOptions{})
		assert.ErrorIs(t, err, ErrRedisStorage)
	})

	t.Run("server down", func(t *testing.T) {
		srv.Close()
		err := s.Create(context.Background(), notice("s1", 1, time.Now()))
		assert.ErrorIs(t, err, ErrRedisStorage)
	})
}
