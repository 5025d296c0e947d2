package billing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTrialDays is the length of a trial subscription.
const DefaultTrialDays = 30

// DefaultCurrency is the ISO 4217 code subscriptions are priced in.
const DefaultCurrency = "INR"

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithClock sets the clock used to stamp subscription dates.
func WithClock(c Clock) FactoryOption {
	return func(f *Factory) {
		if c != nil {
			f.clock = c
		}
	}
}

// WithIDGenerator sets the subscription ID generator.
func WithIDGenerator(fn func() string) FactoryOption {
	return func(f *Factory) {
		if fn != nil {
			f.newID = fn
		}
	}
}

// WithCurrency sets the currency code stamped on subscriptions.
func WithCurrency(code string) FactoryOption {
	return func(f *Factory) {
		if code != "" {
			f.currency = strings.ToUpper(code)
		}
	}
}

// WithTrialDays overrides the trial length. Non-positive values are ignored.
func WithTrialDays(days int) FactoryOption {
	return func(f *Factory) {
		if days > 0 {
			f.trialDays = days
		}
	}
}

// Factory builds paid and trial Subscription records.
type Factory struct {
	catalog   *Catalog
	clock     Clock
	newID     func() string
	currency  string
	trialDays int
}

// NewFactory returns a Factory pricing subscriptions from catalog.
func NewFactory(catalog *Catalog, opts ...FactoryOption) *Factory {
	if catalog == nil {
		panic("billing: Catalog is required")
	}
	f := &Factory{
		catalog:   catalog,
		clock:     SystemClock(),
		newID:     uuid.NewString,
		currency:  DefaultCurrency,
		trialDays: DefaultTrialDays,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Catalog returns the catalog the factory prices from.
func (f *Factory) Catalog() *Catalog { return f.catalog }

// Clock returns the factory clock.
func (f *Factory) Clock() Clock { return f.clock }

// Currency returns the currency code stamped on subscriptions.
func (f *Factory) Currency() string { return f.currency }

// CreateSubscription builds an active paid subscription starting now and ending
// one calendar cycle later.
func (f *Factory) CreateSubscription(plan Plan, cycle BillingCycle, userCount int, method PaymentMethod, userID string) (*Subscription, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	now := f.clock.Now()
	if err := method.ValidateAt(now); err != nil {
		return nil, err
	}

	pricing, err := f.catalog.Pricing(plan, userCount, cycle)
	if err != nil {
		return nil, err
	}

	end := AddCycle(now, cycle)
	pm := method

	return &Subscription{
		ID:              f.newID(),
		UserID:          userID,
		Plan:            plan,
		BillingCycle:    cycle,
		Status:          StatusActive,
		StartDate:       now,
		EndDate:         end,
		NextBillingDate: end,
		Amount:          pricing.ActualPrice,
		Currency:        f.currency,
		UserCount:       userCount,
		PaymentMethod:   &pm,
		AutoRenew:       true,
	}, nil
}

// StartTrialSubscription builds a zero-cost trial lasting the configured number
// of days. Trials carry no payment method and do not auto-renew.
func (f *Factory) StartTrialSubscription(plan Plan, userCount int, userID string) (*Subscription, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if _, err := f.catalog.Plan(plan); err != nil {
		return nil, err
	}
	if userCount < 1 {
		return nil, ErrInvalidUserCount
	}

	now := f.clock.Now()
	trialEnd := now.AddDate(0, 0, f.trialDays)

	return &Subscription{
		ID:              f.newID(),
		UserID:          userID,
		Plan:            plan,
		BillingCycle:    CycleMonthly,
		Status:          StatusTrial,
		StartDate:       now,
		EndDate:         trialEnd,
		NextBillingDate: trialEnd,
		Amount:          decimal.Zero,
		Currency:        f.currency,
		UserCount:       userCount,
		AutoRenew:       false,
		TrialEndDate:    &trialEnd,
	}, nil
}
