package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/binder"
	"github.com/dmitrymomot/billingkit/pkg/checkout"
	"github.com/dmitrymomot/billingkit/pkg/ledger"
	"github.com/dmitrymomot/billingkit/pkg/logger"
	"github.com/dmitrymomot/billingkit/pkg/payment"
	"github.com/dmitrymomot/billingkit/pkg/promo"
	"github.com/dmitrymomot/billingkit/pkg/validator"
)

type errorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), logger.Error(err))
	}
	body := errorBody{Error: msg}
	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		body.Fields = verrs.ByField()
	}
	writeJSON(w, status, body)
}

// bindStatus maps binder failures to 400 or 415.
func bindStatus(err error) int {
	if errors.Is(err, binder.ErrUnsupportedMediaType) || errors.Is(err, binder.ErrMissingContentType) {
		return http.StatusUnsupportedMediaType
	}
	if errors.Is(err, binder.ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// resultStatus maps a checkout result to an HTTP status.
func resultStatus(res checkout.Result) int {
	if res.Success {
		return http.StatusOK
	}
	err := res.Err
	switch {
	case errors.Is(err, checkout.ErrPaymentInProgress),
		errors.Is(err, checkout.ErrAlreadySubscribed),
		errors.Is(err, billing.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, billing.ErrNoSubscription):
		return http.StatusNotFound
	case errors.Is(err, checkout.ErrInvalidRequest),
		errors.Is(err, billing.ErrPlanNotFound),
		errors.Is(err, billing.ErrInvalidUserCount),
		errors.Is(err, promo.ErrCodeNotFound),
		errors.Is(err, promo.ErrCodeExpired),
		errors.Is(err, promo.ErrCodeExhausted),
		errors.Is(err, promo.ErrInvalidCode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, payment.ErrDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, payment.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, checkout.ErrGuardUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, checkout.ErrLedgerFailed),
		errors.Is(err, ledger.ErrStoreFailure),
		errors.Is(err, checkout.ErrInternal):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
