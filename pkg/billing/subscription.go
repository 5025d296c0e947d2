package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Subscription describes a user's plan, billing cycle, price and validity window.
// Exactly one user record owns a subscription. It is replaced wholesale on
// re-subscribe and never mutated in place by the engine.
type Subscription struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Plan            Plan            `json:"plan"`
	BillingCycle    BillingCycle    `json:"billing_cycle"`
	Status          Status          `json:"status"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	NextBillingDate time.Time       `json:"next_billing_date"`
	Amount          decimal.Decimal `json:"amount"` // price actually charged, unrounded
	Currency        string          `json:"currency"`
	UserCount       int             `json:"user_count"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty"`
	AutoRenew       bool            `json:"auto_renew"`
	TrialEndDate    *time.Time      `json:"trial_end_date,omitempty"` // set only for trials
}

// Clone returns a deep copy so callers can derive new values without aliasing
// the pointer fields of the original.
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	c := *s
	if s.PaymentMethod != nil {
		pm := *s.PaymentMethod
		c.PaymentMethod = &pm
	}
	if s.TrialEndDate != nil {
		t := *s.TrialEndDate
		c.TrialEndDate = &t
	}
	return &c
}

// Validate checks the cross-field invariants of a stored subscription.
func (s *Subscription) Validate() error {
	if s == nil {
		return ErrNoSubscription
	}

	var errs []error
	if !s.EndDate.After(s.StartDate) {
		errs = append(errs, errors.New("end date must be after start date"))
	}
	if s.UserCount < 1 {
		errs = append(errs, ErrInvalidUserCount)
	}
	if s.Amount.IsNegative() {
		errs = append(errs, errors.New("amount must not be negative"))
	}
	if s.Status == StatusTrial {
		if s.TrialEndDate == nil {
			errs = append(errs, errors.New("trial subscription requires trial end date"))
		}
		if !s.Amount.IsZero() {
			errs = append(errs, fmt.Errorf("trial subscription amount must be zero, got %s", s.Amount))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidSubscription}, errs...)...)
	}
	return nil
}
