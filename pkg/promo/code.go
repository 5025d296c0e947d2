package promo

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Code is a promotional discount definition.
type Code struct {
	Code           string          `json:"code"`
	PercentOff     decimal.Decimal `json:"percent_off"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	MaxRedemptions int             `json:"max_redemptions,omitempty"` // 0 means unlimited
}

// Normalize returns the canonical form of a user-entered code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Expired reports whether the code is past its expiry at now.
func (c Code) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}

// Exhausted reports whether redeemed uses have reached the limit.
func (c Code) Exhausted(redeemed int64) bool {
	return c.MaxRedemptions > 0 && redeemed >= int64(c.MaxRedemptions)
}

// Apply returns total reduced by the code's percentage.
// The result is for display only and never feeds back into a subscription amount.
func (c Code) Apply(total decimal.Decimal) decimal.Decimal {
	if c.PercentOff.IsZero() {
		return total
	}
	off := total.Mul(c.PercentOff).Div(hundred)
	return total.Sub(off)
}

// Discount returns the amount Apply subtracts from total.
func (c Code) Discount(total decimal.Decimal) decimal.Decimal {
	return total.Sub(c.Apply(total))
}
