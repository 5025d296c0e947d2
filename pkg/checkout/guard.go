package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Guard serializes payment attempts per key. Acquire fails fast with
// ErrPaymentInProgress when the key is held; it never waits.
type Guard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type memoryGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemoryGuard returns a process-local Guard.
func NewMemoryGuard() Guard {
	return &memoryGuard{held: make(map[string]struct{})}
}

func (g *memoryGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.held[key]; ok {
		return nil, ErrPaymentInProgress
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}

// DefaultGuardTTL bounds how long a crashed holder can block a session.
const DefaultGuardTTL = time.Minute

// releaseScript deletes the key only if it still holds our token, so an
// expired-then-reacquired lock is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// refreshScript extends the key's expiry only while it still holds our token.
var refreshScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return 0
`)

type redisGuard struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewRedisGuard returns a Guard shared across processes through Redis
// SET NX PX. While held, the lock is refreshed every ttl/3, so it only
// expires when the holder stops running without releasing it.
func NewRedisGuard(client redis.UniversalClient, ttl time.Duration) Guard {
	if client == nil {
		panic("checkout: redis client is required")
	}
	if ttl <= 0 {
		ttl = DefaultGuardTTL
	}
	return &redisGuard{client: client, ttl: ttl, prefix: "checkout:guard:"}
}

func (g *redisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, g.prefix+key, token, g.ttl).Result()
	if err != nil {
		return nil, errors.Join(ErrGuardUnavailable, err)
	}
	if !ok {
		return nil, ErrPaymentInProgress
	}

	lockKey := g.prefix + key
	stop := make(chan struct{})
	done := make(chan struct{})
	go g.keepalive(context.WithoutCancel(ctx), lockKey, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			// Release must run even when the caller's ctx is already done.
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			_ = releaseScript.Run(ctx, g.client, []string{lockKey}, token).Err()
		})
	}, nil
}

// keepalive extends the lock until stop is closed or the token is lost.
func (g *redisGuard) keepalive(ctx context.Context, key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(max(g.ttl/3, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		rctx, cancel := context.WithTimeout(ctx, g.ttl)
		n, err := refreshScript.Run(rctx, g.client, []string{key}, token, g.ttl.Milliseconds()).Int64()
		cancel()
		if err == nil && n == 0 {
			return
		}
	}
}
