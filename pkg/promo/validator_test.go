package promo_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/promo"
)

func TestValidator_ValidateAndApply(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	v := promo.NewValidator(promo.DefaultCatalog())

	t.Run("accepts code case-insensitively with whitespace", func(t *testing.T) {
		t.Parallel()
		for _, input := range []string{"SAVE10", "save10", "  Save10\t"} {
			var st promo.State
			ok := v.ValidateAndApply(ctx, input, &st)
			assert.True(t, ok, input)
			assert.True(t, st.Applied)
			assert.Equal(t, "SAVE10", st.Code)
			assert.False(t, st.Failed)
			assert.NotEmpty(t, st.Message)
		}
	})

	t.Run("rejects anything else and clears state", func(t *testing.T) {
		t.Parallel()
		for _, input := range []string{"", "SAVE20", "SAVE 10", "save1"} {
			st := promo.State{Applied: true, Code: "SAVE10"}
			ok := v.ValidateAndApply(ctx, input, &st)
			assert.False(t, ok, input)
			assert.False(t, st.Applied)
			assert.Empty(t, st.Code)
			assert.True(t, st.Failed)
			assert.Equal(t, "Invalid promo code", st.Message)
		}
	})

	t.Run("remove resets unconditionally", func(t *testing.T) {
		t.Parallel()
		st := promo.State{Applied: true, Code: "SAVE10", Failed: true}
		v.RemovePromo(&st)
		assert.False(t, st.Applied)
		assert.Empty(t, st.Code)
		assert.False(t, st.Failed)
	})
}

func TestValidator_ExpiryAndLimits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	expiry := now.Add(time.Hour)

	catalog, err := promo.NewCatalog(ctx, promo.NewStaticSource(
		promo.Code{Code: "flash", PercentOff: decimal.NewFromInt(50), ExpiresAt: &expiry},
		promo.Code{Code: "ONCE", PercentOff: decimal.NewFromInt(20), MaxRedemptions: 1},
	))
	require.NoError(t, err)

	t.Run("expired code fails", func(t *testing.T) {
		t.Parallel()
		before := promo.NewValidator(catalog, promo.WithClock(billing.FixedClock(now)))
		after := promo.NewValidator(catalog, promo.WithClock(billing.FixedClock(expiry)))

		var st promo.State
		assert.True(t, before.ValidateAndApply(ctx, "FLASH", &st))

		assert.False(t, after.ValidateAndApply(ctx, "FLASH", &st))
		assert.False(t, st.Applied)
		assert.Equal(t, "This promo code has expired", st.Message)

		_, err := after.Check(ctx, "flash")
		assert.ErrorIs(t, err, promo.ErrCodeExpired)
	})

	t.Run("exhausted code fails", func(t *testing.T) {
		t.Parallel()
		v := promo.NewValidator(catalog, promo.WithRedemptions(promo.NewMemoryRedemptions()))

		var st promo.State
		require.True(t, v.ValidateAndApply(ctx, "once", &st))

		_, err := v.Redeem(ctx, "once")
		require.NoError(t, err)

		assert.False(t, v.ValidateAndApply(ctx, "once", &st))
		assert.Equal(t, "This promo code is no longer available", st.Message)

		_, err = v.Redeem(ctx, "once")
		assert.ErrorIs(t, err, promo.ErrCodeExhausted)
	})

	t.Run("unknown code cannot be redeemed", func(t *testing.T) {
		t.Parallel()
		v := promo.NewValidator(catalog)
		_, err := v.Redeem(ctx, "nope")
		assert.ErrorIs(t, err, promo.ErrCodeNotFound)
	})
}

func TestRedisRedemptions(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := promo.NewRedisRedemptions(client, "")

	n, err := store.Count(ctx, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	for i := 1; i <= 3; i++ {
		n, err = store.Redeem(ctx, "SAVE10", 0)
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}

	n, err = store.Count(ctx, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	raw, err := mr.Get(promo.DefaultRedisKeyPrefix + "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "3", raw)

	catalog, err := promo.NewCatalog(ctx, promo.NewStaticSource(
		promo.Code{Code: "SAVE10", PercentOff: decimal.NewFromInt(10), MaxRedemptions: 3},
	))
	require.NoError(t, err)
	v := promo.NewValidator(catalog, promo.WithRedemptions(store))
	_, err = v.Check(ctx, "save10")
	assert.ErrorIs(t, err, promo.ErrCodeExhausted)

	assert.Panics(t, func() { promo.NewRedisRedemptions(nil, "") })
}

func TestRedemptionStore_ConcurrentLimit(t *testing.T) {
	t.Parallel()

	stores := map[string]func(t *testing.T) promo.RedemptionStore{
		"memory": func(*testing.T) promo.RedemptionStore { return promo.NewMemoryRedemptions() },
		"redis": func(t *testing.T) promo.RedemptionStore {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return promo.NewRedisRedemptions(client, "")
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := newStore(t)

			catalog, err := promo.NewCatalog(ctx, promo.NewStaticSource(
				promo.Code{Code: "ONCE", PercentOff: decimal.NewFromInt(50), MaxRedemptions: 1},
			))
			require.NoError(t, err)
			v := promo.NewValidator(catalog, promo.WithRedemptions(store))

			const workers = 16
			var (
				wg        sync.WaitGroup
				ok        atomic.Int64
				exhausted atomic.Int64
			)
			start := make(chan struct{})
			for range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					_, err := v.Redeem(ctx, "once")
					switch {
					case err == nil:
						ok.Add(1)
					case errors.Is(err, promo.ErrCodeExhausted):
						exhausted.Add(1)
					}
				}()
			}
			close(start)
			wg.Wait()

			assert.Equal(t, int64(1), ok.Load())
			assert.Equal(t, int64(workers-1), exhausted.Load())

			n, err := store.Count(ctx, "ONCE")
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
		})
	}
}

func TestMemoryRedemptions_LimitLeavesCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := promo.NewMemoryRedemptions()

	n, err := store.Redeem(ctx, "TWICE", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = store.Redeem(ctx, "TWICE", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = store.Redeem(ctx, "TWICE", 2)
	require.ErrorIs(t, err, promo.ErrCodeExhausted)

	n, err = store.Count(ctx, "TWICE")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
