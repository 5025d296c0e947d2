package promo

import "errors"

var (
	ErrCodeNotFound      = errors.New("promo code not found")
	ErrCodeExpired       = errors.New("promo code has expired")
	ErrCodeExhausted     = errors.New("promo code redemption limit reached")
	ErrInvalidCode       = errors.New("invalid promo code configuration")
	ErrFailedToLoadCodes = errors.New("failed to load promo codes")
	ErrRedemptionFailed  = errors.New("failed to record promo redemption")
)
