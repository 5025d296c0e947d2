// Package checkout ties pricing, payment, billing history and promo codes into
// the subscription flows a product exposes to its users.
//
// Subscribe runs the paid flow:
//
//	validate request -> acquire session guard -> build candidate subscription
//	-> charge with timeout -> record paid entry -> redeem promo
//
// Nothing is committed before the charge succeeds, so a failed attempt can be
// retried as is. A Guard keeps one payment in flight per checkout session;
// NewMemoryGuard works inside one process and NewRedisGuard across many.
//
// Every public method returns a Result instead of panicking. Unexpected panics
// become "Something went wrong. Please try again." with ErrInternal in Err.
package checkout
