// Package billing implements the deterministic core of subscription billing:
// plan pricing, subscription construction and the read-time lifecycle.
//
// Everything in this package is pure apart from the injected Clock. It never
// persists anything and never talks to a payment gateway; see the payment,
// ledger and checkout packages for those concerns.
//
// # Pricing
//
// CalculatePricing maps a PlanConfig, a seat count and a BillingCycle to a
// Pricing breakdown. Seats are priced in blocks of ten, rounded up:
//
//	monthly = base + ceil(users/10) * multiplier
//	yearly  = monthly * 12 * (1 - yearlyDiscount)
//
// Arithmetic uses shopspring/decimal. ActualPrice is never rounded so ledger
// math stays precise; DisplayPrice is rounded to whole currency units.
//
//	catalog := billing.DefaultCatalog()
//	p, err := catalog.Pricing(billing.PlanPremium, 25, billing.CycleYearly)
//	// p.MonthlyPrice = 114, p.YearlyPrice = 684, p.ActualPrice = 684
//
// # Subscriptions
//
// Factory builds paid subscriptions (CreateSubscription) and trials
// (StartTrialSubscription). Paid subscriptions end one calendar cycle after
// they start. Month-end overflow is clamped: a monthly subscription started on
// January 31 ends on the last day of February.
//
// # Lifecycle
//
// Expiry is derived, not stored. IsSubscriptionActive, IsInTrial,
// DaysUntilNextBilling and DisplayStatus all take the current time and compare
// it with the subscription dates. CancelSubscription returns a cancelled copy
// and leaves its input untouched.
package billing
