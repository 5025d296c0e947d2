package promo

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedemptionStore counts how many times each code has been redeemed.
type RedemptionStore interface {
	Count(ctx context.Context, code string) (int64, error)
	// Redeem increments the counter and returns the new value. When limit is
	// positive and the counter has already reached it, nothing changes and
	// ErrCodeExhausted is returned.
	Redeem(ctx context.Context, code string, limit int) (int64, error)
}

type memoryRedemptions struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemoryRedemptions returns an in-process RedemptionStore.
func NewMemoryRedemptions() RedemptionStore {
	return &memoryRedemptions{counts: make(map[string]int64)}
}

func (m *memoryRedemptions) Count(_ context.Context, code string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[code], nil
}

func (m *memoryRedemptions) Redeem(_ context.Context, code string, limit int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > 0 && m.counts[code] >= int64(limit) {
		return m.counts[code], ErrCodeExhausted
	}
	m.counts[code]++
	return m.counts[code], nil
}

// DefaultRedisKeyPrefix namespaces redemption counters.
const DefaultRedisKeyPrefix = "promo:redemptions:"

// redeemScript increments KEYS[1] unless it has reached ARGV[1]. A limit of
// zero means unlimited. Returns -1 when exhausted.
var redeemScript = redis.NewScript(`
local limit = tonumber(ARGV[1])
local n = tonumber(redis.call('GET', KEYS[1]) or '0')
if limit > 0 and n >= limit then
	return -1
end
return redis.call('INCR', KEYS[1])
`)

type redisRedemptions struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRedemptions returns a RedemptionStore backed by Redis counters.
// The limit check and increment run as one script.
func NewRedisRedemptions(client redis.UniversalClient, prefix string) RedemptionStore {
	if client == nil {
		panic("promo: redis client is required")
	}
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &redisRedemptions{client: client, prefix: prefix}
}

func (r *redisRedemptions) Count(ctx context.Context, code string) (int64, error) {
	n, err := r.client.Get(ctx, r.prefix+code).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Join(ErrRedemptionFailed, err)
	}
	return n, nil
}

func (r *redisRedemptions) Redeem(ctx context.Context, code string, limit int) (int64, error) {
	n, err := redeemScript.Run(ctx, r.client, []string{r.prefix + code}, max(limit, 0)).Int64()
	if err != nil {
		return 0, errors.Join(ErrRedemptionFailed, err)
	}
	if n < 0 {
		return int64(limit), ErrCodeExhausted
	}
	return n, nil
}
