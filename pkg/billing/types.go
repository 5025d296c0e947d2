package billing

import (
	"errors"
	"time"

	"github.com/dmitrymomot/billingkit/pkg/validator"
)

// Plan identifies a subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanPremium Plan = "premium"
)

// Valid reports whether p is one of the known plans.
func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanStarter, PlanPremium:
		return true
	}
	return false
}

// BillingCycle is the recurrence period for charging.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

func (c BillingCycle) Valid() bool {
	return c == CycleMonthly || c == CycleYearly
}

// Status is the stored state of a subscription.
// Expiry is never stored by the engine itself, see DisplayStatus.
type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// PaymentMethodType is the tag of the PaymentMethod variant.
type PaymentMethodType string

const (
	MethodCard       PaymentMethodType = "card"
	MethodNetBanking PaymentMethodType = "netbanking"
	MethodUPI        PaymentMethodType = "upi"
)

// PaymentMethod is a tagged variant keyed by Type. Only display fields are kept,
// raw credentials never reach the engine.
type PaymentMethod struct {
	Type PaymentMethodType `json:"type"`

	// card
	Last4       string `json:"last4,omitempty"`
	Brand       string `json:"brand,omitempty"`
	ExpiryMonth int    `json:"expiry_month,omitempty"`
	ExpiryYear  int    `json:"expiry_year,omitempty"`

	// netbanking
	BankName string `json:"bank_name,omitempty"`

	// upi
	UPIID string `json:"upi_id,omitempty"`
}

// Card builds a card payment method from its display fields.
func Card(last4, brand string, expiryMonth, expiryYear int) PaymentMethod {
	return PaymentMethod{
		Type:        MethodCard,
		Last4:       last4,
		Brand:       brand,
		ExpiryMonth: expiryMonth,
		ExpiryYear:  expiryYear,
	}
}

func NetBanking(bankName string) PaymentMethod {
	return PaymentMethod{Type: MethodNetBanking, BankName: bankName}
}

func UPI(upiID string) PaymentMethod {
	return PaymentMethod{Type: MethodUPI, UPIID: upiID}
}

// Validate checks that the fields required by the variant are present.
// Field failures are joined with ErrInvalidPaymentMethod.
func (m PaymentMethod) Validate() error {
	var err error
	switch m.Type {
	case MethodCard:
		err = validator.Apply(
			validator.LenString("last4", m.Last4, 4),
			validator.ValidNumericString("last4", m.Last4),
			validator.RequiredString("brand", m.Brand),
			validator.RangeNum("expiry_month", m.ExpiryMonth, 1, 12),
			validator.MinNum("expiry_year", m.ExpiryYear, 2000),
		)
	case MethodNetBanking:
		err = validator.Apply(validator.RequiredString("bank_name", m.BankName))
	case MethodUPI:
		err = validator.Apply(validator.ValidUPIID("upi_id", m.UPIID))
	default:
		return ErrInvalidPaymentMethod
	}
	if err != nil {
		return errors.Join(ErrInvalidPaymentMethod, err)
	}
	return nil
}

// ValidateAt is Validate plus an expiry check for cards. A card stays valid
// through the last day of its expiry month.
func (m PaymentMethod) ValidateAt(now time.Time) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Type == MethodCard && m.CardExpired(now) {
		return errors.Join(ErrInvalidPaymentMethod, ErrCardExpired)
	}
	return nil
}

// CardExpired reports whether the card's expiry month is before now's month.
func (m PaymentMethod) CardExpired(now time.Time) bool {
	year, month := now.Year(), int(now.Month())
	return m.ExpiryYear < year || (m.ExpiryYear == year && m.ExpiryMonth < month)
}

// Tag returns the string tag recorded in billing history.
func (m PaymentMethod) Tag() string {
	return string(m.Type)
}

// User is the slice of the current user record the engine consumes.
type User struct {
	ID           string        `json:"id"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// WithSubscription returns a copy of the user carrying sub.
func (u User) WithSubscription(sub *Subscription) User {
	u.Subscription = sub
	return u
}
