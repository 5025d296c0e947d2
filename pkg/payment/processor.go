package payment

import (
	"context"

	"github.com/dmitrymomot/billingkit/pkg/billing"
)

// Processor charges a payment method for a candidate subscription.
// Implementations must not mutate sub and must resolve every Pending they
// return exactly once.
type Processor interface {
	Process(ctx context.Context, sub *billing.Subscription, method billing.PaymentMethod) *Pending
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, sub *billing.Subscription, method billing.PaymentMethod) *Pending

func (f ProcessorFunc) Process(ctx context.Context, sub *billing.Subscription, method billing.PaymentMethod) *Pending {
	return f(ctx, sub, method)
}

// validateRequest rejects requests a gateway would never accept.
func validateRequest(sub *billing.Subscription, method billing.PaymentMethod) error {
	if sub == nil {
		return billing.ErrNoSubscription
	}
	return method.Validate()
}
