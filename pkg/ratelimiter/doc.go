// Package ratelimiter throttles payment attempts with a token bucket.
//
// A Bucket holds Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each attempt takes one token; a denied attempt takes none,
// so hammering an empty bucket does not push the next grant further out.
//
// MemoryStore keeps buckets in process. RedisStore shares them across
// billingd instances using a Lua script, so the check and the decrement are
// atomic.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client, ""), cfg)
//	r.With(ratelimiter.Middleware(limiter, keyByUser, log)).Post("/v1/subscription", h)
//
// Middleware sets X-RateLimit-* headers and answers 429 with Retry-After when
// a caller runs out of tokens.
package ratelimiter
