package api

import (
	"net/http"

	"github.com/dmitrymomot/billingkit/pkg/binder"
	"github.com/dmitrymomot/billingkit/pkg/promo"
)

type promoBody struct {
	Code string `json:"code"`
}

// POST /v1/promo checks a code and reports the resulting promo state.
func (h *Handler) handleApplyPromo(w http.ResponseWriter, r *http.Request) {
	if h.promos == nil {
		h.writeError(w, r, http.StatusNotFound, "Promo codes are not enabled", nil)
		return
	}
	var body promoBody
	if err := binder.JSON(r, &body); err != nil {
		h.writeError(w, r, bindStatus(err), "Invalid request body", err)
		return
	}

	var st promo.State
	if !h.promos.ValidateAndApply(r.Context(), body.Code, &st) {
		writeJSON(w, http.StatusUnprocessableEntity, st)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// DELETE /v1/promo clears the applied code.
func (h *Handler) handleRemovePromo(w http.ResponseWriter, r *http.Request) {
	if h.promos == nil {
		h.writeError(w, r, http.StatusNotFound, "Promo codes are not enabled", nil)
		return
	}
	var st promo.State
	h.promos.RemovePromo(&st)
	writeJSON(w, http.StatusOK, st)
}
