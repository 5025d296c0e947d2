// Package api is the HTTP surface of billingd.
//
// Callers are identified by the X-User-ID header set by the gateway in front
// of the service; X-Session-ID names the checkout session used to keep one
// payment in flight at a time and defaults to the user id.
//
//	GET    /v1/quote?plan=&cycle=&users=&promo=   price breakdown
//	GET    /v1/quote/upi?plan=&cycle=&users=      UPI collect QR (PNG)
//	POST   /v1/promo                              validate and apply a promo code
//	DELETE /v1/promo                              clear the promo code
//	GET    /v1/subscription                       derived status
//	POST   /v1/subscription                       pay and activate
//	POST   /v1/subscription/trial                 start a free trial
//	POST   /v1/subscription/cancel                cancel
//	GET    /v1/subscription/history               billing history
package api
