package api

import (
	"log/slog"

	"github.com/dmitrymomot/billingkit/pkg/checkout"
	"github.com/dmitrymomot/billingkit/pkg/httpserver"
	"github.com/dmitrymomot/billingkit/pkg/logger"
	"github.com/dmitrymomot/billingkit/pkg/promo"
	"github.com/dmitrymomot/billingkit/pkg/ratelimiter"
)

// Option configures a Handler.
type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithPromoValidator enables the promo code endpoints.
func WithPromoValidator(v *promo.Validator) Option {
	return func(h *Handler) { h.promos = v }
}

// WithUPIPayee enables UPI QR codes for quotes, collected by vpa.
func WithUPIPayee(vpa, name string) Option {
	return func(h *Handler) {
		h.upiVPA = vpa
		h.upiName = name
	}
}

// WithReadinessChecks registers dependency checks for /readyz.
func WithReadinessChecks(checks map[string]httpserver.Check) Option {
	return func(h *Handler) { h.checks = checks }
}

// WithAllowedOrigins sets the CORS origins allowed to call the API.
func WithAllowedOrigins(origins ...string) Option {
	return func(h *Handler) { h.origins = origins }
}

// WithRateLimiter throttles payment attempts per user.
func WithRateLimiter(l ratelimiter.RateLimiter) Option {
	return func(h *Handler) { h.limiter = l }
}

// Handler exposes checkout flows over HTTP.
type Handler struct {
	svc     *checkout.Service
	users   UserStore
	promos  *promo.Validator
	logger  *slog.Logger
	upiVPA  string
	upiName string
	checks  map[string]httpserver.Check
	origins []string
	limiter ratelimiter.RateLimiter
}

// New returns a Handler. svc and users are required.
func New(svc *checkout.Service, users UserStore, opts ...Option) *Handler {
	if svc == nil || users == nil {
		panic("api: checkout service and user store are required")
	}
	h := &Handler{
		svc:    svc,
		users:  users,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(logger.Component("api"))
	return h
}
