// Package promo validates promotional codes and computes the discounted total
// shown to a user.
//
// A promo never changes what a subscription is charged. Code.Apply produces a
// display total; the subscription amount stays the priced value.
//
// Codes live in a Catalog loaded from a Source (built-in defaults or a YAML
// file). Lookups are case-insensitive and ignore surrounding whitespace. A code
// may carry an expiry time and a redemption limit; limits are enforced against
// a RedemptionStore, kept in memory or in Redis.
//
//	v := promo.NewValidator(promo.DefaultCatalog())
//	var st promo.State
//	if v.ValidateAndApply(ctx, " save10 ", &st) {
//	    code, _ := v.Catalog().Lookup(st.Code)
//	    shown := code.Apply(pricing.DisplayPrice)
//	}
package promo
