package payment

import "errors"

var (
	ErrTimeout            = errors.New("payment: timed out waiting for gateway response")
	ErrDeclined           = errors.New("payment: declined by gateway")
	ErrInvalidRequest     = errors.New("payment: invalid payment request")
	ErrCanceled           = errors.New("payment: canceled before completion")
	ErrEmptyPayee         = errors.New("payment: UPI payee address is required")
	ErrQRCodeFailed       = errors.New("payment: failed to generate QR code")
	ErrInvalidFailureRate = errors.New("payment: failure rate must be within [0,1]")
)

// User-facing messages carried in Outcome.Error.
const (
	MsgPaymentFailed  = "Payment failed. Please try again or use a different payment method."
	MsgPaymentTimeout = "Payment is taking longer than expected. Please try again."
	MsgInvalidRequest = "Payment details are incomplete or invalid."
)
