// Package validator provides small declarative validation rules used at the
// billing engine boundary: checkout requests, payment method variants and
// promo catalog entries.
//
// Each exported function builds a Rule that pairs a Check func with
// translation-friendly error metadata. Apply evaluates rules and aggregates
// failures into ValidationErrors, which implements error:
//
//	err := validator.Apply(
//	    validator.RequiredString("user_id", userID),
//	    validator.MinNum("user_count", userCount, 1),
//	    validator.ValidUPIID("upi_id", upiID),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // verrs.Fields(), verrs.Get("user_count"), ...
//	}
//
// The package is stateless and goroutine-safe.
package validator
