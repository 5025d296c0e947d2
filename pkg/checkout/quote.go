package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/promo"
)

// Quote is a price breakdown with an optional promo applied to the display total.
type Quote struct {
	Plan         billing.Plan         `json:"plan"`
	Cycle        billing.BillingCycle `json:"cycle"`
	UserCount    int                  `json:"user_count"`
	Currency     string               `json:"currency"`
	Pricing      billing.Pricing      `json:"pricing"`
	PromoCode    string               `json:"promo_code,omitempty"`
	Discount     decimal.Decimal      `json:"discount"`
	DisplayTotal decimal.Decimal      `json:"display_total"`
	Formatted    string               `json:"formatted,omitempty"`
	Promo        *promo.State         `json:"promo,omitempty"`
}

// Quote prices plan for userCount seats. A promo code, when given, only
// changes DisplayTotal; the chargeable amount stays Pricing.ActualPrice.
func (s *Service) Quote(ctx context.Context, plan billing.Plan, userCount int, cycle billing.BillingCycle, promoCode string) (q Quote, err error) {
	defer func() {
		if err != nil {
			q = Quote{}
		}
	}()
	defer s.recoverErr(ctx, "quote", &err)

	pricing, err := s.factory.Catalog().Pricing(plan, userCount, cycle)
	if err != nil {
		return Quote{}, err
	}

	q = Quote{
		Plan:         plan,
		Cycle:        cycle,
		UserCount:    userCount,
		Currency:     s.factory.Currency(),
		Pricing:      pricing,
		Discount:     decimal.Zero,
		DisplayTotal: pricing.DisplayPrice,
	}

	if promoCode != "" && s.promos != nil {
		st := &promo.State{}
		if s.promos.ValidateAndApply(ctx, promoCode, st) {
			code, _ := s.promos.Catalog().Lookup(st.Code)
			q.PromoCode = code.Code
			q.DisplayTotal = code.Apply(pricing.DisplayPrice).Round(0)
			q.Discount = pricing.DisplayPrice.Sub(q.DisplayTotal)
		}
		q.Promo = st
	}

	if s.formatter != nil {
		q.Formatted = s.formatter.Display(q.DisplayTotal)
	}
	return q, nil
}
