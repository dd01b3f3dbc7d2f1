package notifications

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Notification) Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(time.Second):
		t.Fatal("notification not received")
		return Notification{}
	}
}

func TestBroadcastDeliverer(t *testing.T) {
	t.Run("delivers only to the addressed session", func(t *testing.T) {
		d := NewBroadcastDeliverer(4)
		defer d.Close()
		ctx := context.Background()

		subA := d.Subscribe(ctx, "a")
		subB := d.Subscribe(ctx, "b")

		require.NoError(t, d.Deliver(ctx, Notification{SessionID: "a", Message: "for a"}))

		select {
		case msg := <-subA.Receive(ctx):
			assert.Equal(t, "for a", msg.Data.Message)
		case <-time.After(time.Second):
			t.Fatal("session a did not receive notification")
		}

		select {
		case msg := <-subB.Receive(ctx):
			t.Fatalf("session b received %q", msg.Data.Message)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("delivery without subscribers is a no-op", func(t *testing.T) {
		d := NewBroadcastDeliverer(1)
		defer d.Close()
		assert.NoError(t, d.Deliver(context.Background(), Notification{SessionID: "nobody"}))
	})

	t.Run("evicts least recently used session", func(t *testing.T) {
		d := NewBroadcastDeliverer(4, WithMaxBroadcasters(2))
		defer d.Close()
		ctx := context.Background()

		sub1 := d.Subscribe(ctx, "s1")
		_ = d.Subscribe(ctx, "s2")
		_ = d.Subscribe(ctx, "s3")

		select {
		case _, ok := <-sub1.Receive(ctx):
			assert.False(t, ok, "evicted session stream should be closed")
		case <-time.After(time.Second):
			t.Fatal("evicted session stream stayed open")
		}
	})

	t.Run("close ends all streams", func(t *testing.T) {
		d := NewBroadcastDeliverer(4)
		ctx := context.Background()
		sub := d.Subscribe(ctx, "s1")

		require.NoError(t, d.Close())

		_, ok := <-sub.Receive(ctx)
		assert.False(t, ok)
	})
}

func TestBroadcastDeliverer_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	factory := RedisBroadcasterFactory(client, "qrshare:notifications:", slog.New(slog.DiscardHandler))
	// one deliverer per process, sharing the redis server
	sender := NewBroadcastDeliverer(4, WithBroadcasterFactory(factory))
	streamer := NewBroadcastDeliverer(4, WithBroadcasterFactory(factory))
	defer sender.Close()
	defer streamer.Close()

	ctx := context.Background()
	sub := streamer.Subscribe(ctx, "s1")
	other := streamer.Subscribe(ctx, "s2")

	require.NoError(t, sender.Deliver(ctx, Notification{ID: "n1", SessionID: "s1", Type: TypeSuccess, Message: "Shared qr-code.png"}))

	select {
	case msg := <-sub.Receive(ctx):
		assert.Equal(t, "n1", msg.Data.ID)
		assert.Equal(t, TypeSuccess, msg.Data.Type)
	case <-time.After(time.Second):
		t.Fatal("notification did not cross instances")
	}

	select {
	case msg := <-other.Receive(ctx):
		t.Fatalf("session s2 received %q", msg.Data.Message)
	case <-time.After(50 * time.Millisecond):
	}
}
