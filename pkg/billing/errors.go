package billing

import "errors"

var (
	ErrPlanNotFound             = errors.New("billing plan not found")
	ErrInvalidPlan              = errors.New("invalid billing plan")
	ErrInvalidBillingCycle      = errors.New("invalid billing cycle")
	ErrInvalidUserCount         = errors.New("user count must be at least 1")
	ErrInvalidPlanConfiguration = errors.New("invalid billing plan configuration")
	ErrFailedToLoadPlans        = errors.New("failed to load billing plans")

	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrCardExpired          = errors.New("card has expired")
	ErrMissingUserID        = errors.New("user ID is required")

	ErrInvalidSubscription = errors.New("subscription violates billing invariants")
	ErrInvalidTransition   = errors.New("subscription status transition not allowed")
	ErrNoSubscription      = errors.New("user has no subscription")
)
