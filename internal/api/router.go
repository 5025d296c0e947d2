package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/billingkit/pkg/httpserver"
	"github.com/dmitrymomot/billingkit/pkg/ratelimiter"
	"github.com/dmitrymomot/billingkit/pkg/requestid"
)

// Headers identifying the caller. Authentication happens in front of this service.
const (
	HeaderUserID    = "X-User-ID"
	HeaderSessionID = "X-Session-ID"
)

// Router returns the HTTP routes of the billing API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(h.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", HeaderUserID, HeaderSessionID, requestid.Header},
			ExposedHeaders: []string{requestid.Header},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(h.logger, h.checks))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/quote", h.handleQuote)
		r.Get("/quote/upi", h.handleQuoteUPI)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)

			r.Post("/promo", h.handleApplyPromo)
			r.Delete("/promo", h.handleRemovePromo)

			r.Get("/subscription", h.handleStatus)
			r.With(h.paymentLimit()).Post("/subscription", h.handleSubscribe)
			r.Post("/subscription/trial", h.handleStartTrial)
			r.Post("/subscription/cancel", h.handleCancel)
			r.Get("/subscription/history", h.handleHistory)
		})
	})

	return r
}

// paymentLimit throttles payment attempts per user when a limiter is set.
func (h *Handler) paymentLimit() func(http.Handler) http.Handler {
	if h.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimiter.Middleware(h.limiter, func(r *http.Request) string {
		return "subscribe:" + userID(r.Context())
	}, h.logger)
}
