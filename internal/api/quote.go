package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/binder"
	"github.com/dmitrymomot/billingkit/pkg/checkout"
	"github.com/dmitrymomot/billingkit/pkg/payment"
)

const maxQRSize = 1024

type quoteQuery struct {
	Plan      billing.Plan         `query:"plan"`
	Cycle     billing.BillingCycle `query:"cycle"`
	UserCount int                  `query:"users"`
	Promo     string               `query:"promo"`
	Size      int                  `query:"size"`
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) (checkout.Quote, quoteQuery, bool) {
	q := quoteQuery{Cycle: billing.CycleMonthly, UserCount: 1}
	if err := binder.Query(r, &q); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid query parameters", err)
		return checkout.Quote{}, q, false
	}
	quote, err := h.svc.Quote(r.Context(), q.Plan, q.UserCount, q.Cycle, q.Promo)
	switch {
	case err == nil:
		return quote, q, true
	case errors.Is(err, billing.ErrPlanNotFound),
		errors.Is(err, billing.ErrInvalidUserCount),
		errors.Is(err, billing.ErrInvalidBillingCycle):
		h.writeError(w, r, http.StatusUnprocessableEntity, err.Error(), err)
	default:
		h.writeError(w, r, http.StatusInternalServerError, checkout.MsgSomethingWrong, err)
	}
	return checkout.Quote{}, q, false
}

// GET /v1/quote?plan=premium&cycle=yearly&users=25&promo=SAVE10
func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	if quote, _, ok := h.quote(w, r); ok {
		writeJSON(w, http.StatusOK, quote)
	}
}

// GET /v1/quote/upi renders a UPI collect QR code for the quoted total.
func (h *Handler) handleQuoteUPI(w http.ResponseWriter, r *http.Request) {
	if h.upiVPA == "" {
		h.writeError(w, r, http.StatusNotFound, "UPI payments are not enabled", nil)
		return
	}
	quote, q, ok := h.quote(w, r)
	if !ok {
		return
	}

	intent := payment.UPIIntent{
		PayeeVPA:  h.upiVPA,
		PayeeName: h.upiName,
		Amount:    quote.Pricing.ActualPrice,
		Currency:  quote.Currency,
		Note:      string(quote.Plan) + " " + string(quote.Cycle),
	}
	png, err := intent.QRCode(min(q.Size, maxQRSize))
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, checkout.MsgSomethingWrong, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
