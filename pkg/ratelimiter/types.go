package ratelimiter

import "time"

// Result is the outcome of one limit check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left; negative when the request was denied
	ResetAt   time.Time // next refill
	now       time.Time
}

// Allowed reports whether the tokens were granted.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long a denied caller should wait. Zero when allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(r.now), 0)
}

// Config is a token bucket: Capacity tokens, refilled by RefillRate every
// RefillInterval.
type Config struct {
	Capacity       int           `env:"PAYMENT_ATTEMPTS_CAPACITY" envDefault:"5"`
	RefillRate     int           `env:"PAYMENT_ATTEMPTS_REFILL" envDefault:"1"`
	RefillInterval time.Duration `env:"PAYMENT_ATTEMPTS_INTERVAL" envDefault:"1m"`
}
