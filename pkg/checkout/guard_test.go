package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingkit/pkg/checkout"
)

func runGuardSuite(t *testing.T, guard checkout.Guard) {
	t.Helper()
	ctx := context.Background()

	release, err := guard.Acquire(ctx, "sess-a")
	require.NoError(t, err)

	_, err = guard.Acquire(ctx, "sess-a")
	assert.ErrorIs(t, err, checkout.ErrPaymentInProgress)

	other, err := guard.Acquire(ctx, "sess-b")
	require.NoError(t, err)
	other()

	release()
	release() // idempotent

	again, err := guard.Acquire(ctx, "sess-a")
	require.NoError(t, err)
	again()
}

func TestMemoryGuard(t *testing.T) {
	t.Parallel()
	runGuardSuite(t, checkout.NewMemoryGuard())
}

func TestRedisGuard(t *testing.T) {
	t.Parallel()

	newClient := func(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return mr, client
	}

	t.Run("acquire and release", func(t *testing.T) {
		t.Parallel()
		_, client := newClient(t)
		runGuardSuite(t, checkout.NewRedisGuard(client, time.Minute))
	})

	t.Run("expired lock can be taken over", func(t *testing.T) {
		t.Parallel()
		mr, client := newClient(t)
		guard := checkout.NewRedisGuard(client, time.Second)
		ctx := context.Background()

		stale, err := guard.Acquire(ctx, "sess-a")
		require.NoError(t, err)

		mr.FastForward(2 * time.Second)

		fresh, err := guard.Acquire(ctx, "sess-a")
		require.NoError(t, err)

		// Old holder must not release the new holder's lock.
		stale()
		_, err = guard.Acquire(ctx, "sess-a")
		assert.ErrorIs(t, err, checkout.ErrPaymentInProgress)

		fresh()
		final, err := guard.Acquire(ctx, "sess-a")
		require.NoError(t, err)
		final()
	})

	t.Run("held lock outlives its ttl", func(t *testing.T) {
		t.Parallel()
		mr, client := newClient(t)
		ttl := 300 * time.Millisecond
		guard := checkout.NewRedisGuard(client, ttl)
		ctx := context.Background()

		release, err := guard.Acquire(ctx, "sess-a")
		require.NoError(t, err)

		// Well past the ttl in total; each window leaves room for a refresh.
		for range 5 {
			time.Sleep(ttl / 2)
			mr.FastForward(ttl / 3)
		}
		assert.True(t, mr.Exists("checkout:guard:sess-a"))

		_, err = guard.Acquire(ctx, "sess-a")
		assert.ErrorIs(t, err, checkout.ErrPaymentInProgress)

		release()
		assert.False(t, mr.Exists("checkout:guard:sess-a"))

		again, err := guard.Acquire(ctx, "sess-a")
		require.NoError(t, err)
		again()
	})

	t.Run("release survives cancelled context", func(t *testing.T) {
		t.Parallel()
		_, client := newClient(t)
		guard := checkout.NewRedisGuard(client, time.Minute)

		ctx, cancel := context.WithCancel(context.Background())
		release, err := guard.Acquire(ctx, "sess-a")
		require.NoError(t, err)
		cancel()
		release()

		again, err := guard.Acquire(context.Background(), "sess-a")
		require.NoError(t, err)
		again()
	})

	t.Run("unavailable redis", func(t *testing.T) {
		t.Parallel()
		mr, client := newClient(t)
		mr.Close()
		guard := checkout.NewRedisGuard(client, time.Minute)

		_, err := guard.Acquire(context.Background(), "sess-a")
		assert.ErrorIs(t, err, checkout.ErrGuardUnavailable)
	})

	t.Run("nil client panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { checkout.NewRedisGuard(nil, time.Minute) })
	})
}
