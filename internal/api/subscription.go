package api

import (
	"net/http"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/binder"
	"github.com/dmitrymomot/billingkit/pkg/checkout"
	"github.com/dmitrymomot/billingkit/pkg/ledger"
	"github.com/dmitrymomot/billingkit/pkg/logger"
)

type subscribeBody struct {
	Plan          billing.Plan          `json:"plan"`
	Cycle         billing.BillingCycle  `json:"cycle"`
	UserCount     int                   `json:"user_count"`
	PaymentMethod billing.PaymentMethod `json:"payment_method"`
	PromoCode     string                `json:"promo_code,omitempty"`
}

type trialBody struct {
	Plan      billing.Plan `json:"plan"`
	UserCount int          `json:"user_count"`
}

type historyBody struct {
	SubscriptionID string         `json:"subscription_id"`
	Entries        []ledger.Entry `json:"entries"`
}

func (h *Handler) loadUser(w http.ResponseWriter, r *http.Request) (billing.User, bool) {
	user, err := h.users.Get(r.Context(), userID(r.Context()))
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, checkout.MsgSomethingWrong, err)
		return billing.User{}, false
	}
	return user, true
}

// respondResult persists the returned user on success and writes the result.
func (h *Handler) respondResult(w http.ResponseWriter, r *http.Request, res checkout.Result) {
	if res.Success {
		if err := h.users.Save(r.Context(), res.User); err != nil {
			h.logger.ErrorContext(r.Context(), "user not saved",
				logger.UserID(res.User.ID),
				logger.Error(err),
			)
			h.writeError(w, r, http.StatusInternalServerError, checkout.MsgSomethingWrong, err)
			return
		}
	}
	writeJSON(w, resultStatus(res), res)
}

// POST /v1/subscription
func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var body subscribeBody
	if err := binder.JSON(r, &body); err != nil {
		h.writeError(w, r, bindStatus(err), "Invalid request body", err)
		return
	}
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	res := h.svc.Subscribe(r.Context(), checkout.Request{
		User:          user,
		SessionID:     sessionID(r),
		Plan:          body.Plan,
		Cycle:         body.Cycle,
		UserCount:     body.UserCount,
		PaymentMethod: body.PaymentMethod,
		PromoCode:     body.PromoCode,
	})
	h.respondResult(w, r, res)
}

// POST /v1/subscription/trial
func (h *Handler) handleStartTrial(w http.ResponseWriter, r *http.Request) {
	var body trialBody
	if err := binder.JSON(r, &body); err != nil {
		h.writeError(w, r, bindStatus(err), "Invalid request body", err)
		return
	}
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	h.respondResult(w, r, h.svc.StartTrial(r.Context(), user, body.Plan, body.UserCount))
}

// POST /v1/subscription/cancel
func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	h.respondResult(w, r, h.svc.Cancel(r.Context(), user))
}

// GET /v1/subscription
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Status(user))
}

// GET /v1/subscription/history
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	if user.Subscription == nil {
		h.writeError(w, r, http.StatusNotFound, checkout.MsgNoSubscription, billing.ErrNoSubscription)
		return
	}

	entries, err := h.svc.History(r.Context(), user.Subscription.ID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, checkout.MsgSomethingWrong, err)
		return
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}
	writeJSON(w, http.StatusOK, historyBody{SubscriptionID: user.Subscription.ID, Entries: entries})
}
