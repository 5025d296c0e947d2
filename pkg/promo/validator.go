package promo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/logger"
)

const (
	msgInvalid   = "Invalid promo code"
	msgExpired   = "This promo code has expired"
	msgExhausted = "This promo code is no longer available"
)

// Option configures a Validator.
type Option func(*Validator)

// WithRedemptions sets the store used to enforce redemption limits.
func WithRedemptions(store RedemptionStore) Option {
	return func(v *Validator) {
		if store != nil {
			v.redemptions = store
		}
	}
}

// WithClock sets the clock used for expiry checks.
func WithClock(c billing.Clock) Option {
	return func(v *Validator) {
		if c != nil {
			v.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// Validator checks user-entered codes against a Catalog and reports the
// outcome through Setters.
type Validator struct {
	catalog     *Catalog
	redemptions RedemptionStore
	clock       billing.Clock
	logger      *slog.Logger
}

// NewValidator returns a Validator for catalog.
func NewValidator(catalog *Catalog, opts ...Option) *Validator {
	if catalog == nil {
		panic("promo: Catalog is required")
	}
	v := &Validator{
		catalog:     catalog,
		redemptions: NewMemoryRedemptions(),
		clock:       billing.SystemClock(),
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Check resolves code to a usable Code or returns why it cannot be used.
func (v *Validator) Check(ctx context.Context, code string) (Code, error) {
	c, ok := v.catalog.Lookup(code)
	if !ok {
		return Code{}, ErrCodeNotFound
	}
	if c.Expired(v.clock.Now()) {
		return Code{}, ErrCodeExpired
	}
	if c.MaxRedemptions > 0 {
		n, err := v.redemptions.Count(ctx, c.Code)
		if err != nil {
			return Code{}, err
		}
		if c.Exhausted(n) {
			return Code{}, ErrCodeExhausted
		}
	}
	return c, nil
}

// ValidateAndApply normalizes code and looks it up. On a match it marks the
// promo applied, stores the normalized code and reports success. Otherwise it
// clears the applied state and code and reports an error.
func (v *Validator) ValidateAndApply(ctx context.Context, code string, s Setters) bool {
	normalized := Normalize(code)

	c, err := v.Check(ctx, normalized)
	if err != nil {
		s.SetApplied(false)
		s.SetCode("")
		s.Error(failureMessage(err))
		v.logger.DebugContext(ctx, "promo code rejected",
			logger.Component("promo"),
			logger.PromoCode(normalized),
			logger.Error(err),
		)
		return false
	}

	s.SetApplied(true)
	s.SetCode(c.Code)
	s.Success(fmt.Sprintf("Promo code applied! %s%% discount", c.PercentOff.String()))
	return true
}

// RemovePromo resets every promo field unconditionally.
func (v *Validator) RemovePromo(s Setters) {
	s.SetApplied(false)
	s.SetCode("")
	s.Success("Promo code removed")
}

// Redeem records one use of code. The limit is enforced by the store in the
// same step as the increment, so concurrent redemptions never overshoot it.
// Called after a successful payment; never affects the charged amount.
func (v *Validator) Redeem(ctx context.Context, code string) (Code, error) {
	c, ok := v.catalog.Lookup(code)
	if !ok {
		return Code{}, ErrCodeNotFound
	}
	if c.Expired(v.clock.Now()) {
		return Code{}, ErrCodeExpired
	}
	if _, err := v.redemptions.Redeem(ctx, c.Code, c.MaxRedemptions); err != nil {
		return Code{}, err
	}
	v.logger.InfoContext(ctx, "promo code redeemed",
		logger.Component("promo"),
		logger.PromoCode(c.Code),
	)
	return c, nil
}

// Catalog returns the code catalog.
func (v *Validator) Catalog() *Catalog { return v.catalog }

func failureMessage(err error) string {
	switch err {
	case ErrCodeExpired:
		return msgExpired
	case ErrCodeExhausted:
		return msgExhausted
	default:
		return msgInvalid
	}
}
