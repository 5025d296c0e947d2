package checkout

import "errors"

var (
	ErrPaymentInProgress = errors.New("checkout: a payment is already in progress for this session")
	ErrInvalidRequest    = errors.New("checkout: invalid request")
	ErrAlreadySubscribed = errors.New("checkout: user already has a running subscription")
	ErrLedgerFailed      = errors.New("checkout: payment captured but billing history could not be recorded")
	ErrInternal          = errors.New("checkout: internal error")
	ErrGuardUnavailable  = errors.New("checkout: payment guard unavailable")
)

// User-facing messages.
const (
	MsgSomethingWrong   = "Something went wrong. Please try again."
	MsgInvalidRequest   = "Please check your subscription details and try again."
	MsgInProgress       = "A payment is already being processed. Please wait."
	MsgSubscribed       = "Subscription activated successfully!"
	MsgTrialStarted     = "Your free trial has started!"
	MsgCancelled        = "Your subscription has been cancelled."
	MsgNoSubscription   = "You don't have a subscription."
	MsgAlreadyCancelled = "This subscription can't be cancelled."
	MsgAlreadyRunning   = "You already have an active subscription."
	MsgLedgerFailed     = "Payment received but we could not record it. Please contact support."
	MsgInvalidPromo     = "Invalid promo code"
)
