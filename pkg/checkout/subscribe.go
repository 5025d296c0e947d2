package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/ledger"
	"github.com/dmitrymomot/billingkit/pkg/logger"
	"github.com/dmitrymomot/billingkit/pkg/promo"
	"github.com/dmitrymomot/billingkit/pkg/validator"
)

var (
	planNames  = []string{string(billing.PlanFree), string(billing.PlanStarter), string(billing.PlanPremium)}
	cycleNames = []string{string(billing.CycleMonthly), string(billing.CycleYearly)}
)

// Request asks for a paid subscription.
type Request struct {
	User          billing.User          `json:"user"`
	SessionID     string                `json:"session_id"`
	Plan          billing.Plan          `json:"plan"`
	Cycle         billing.BillingCycle  `json:"cycle"`
	UserCount     int                   `json:"user_count"`
	PaymentMethod billing.PaymentMethod `json:"payment_method"`
	PromoCode     string                `json:"promo_code,omitempty"`
}

// Validate checks the request shape before anything is priced or charged.
func (r Request) Validate() error {
	err := validator.Apply(
		validator.RequiredString("user_id", r.User.ID),
		validator.RequiredString("session_id", r.SessionID),
		validator.OneOf("plan", string(r.Plan), planNames),
		validator.OneOf("cycle", string(r.Cycle), cycleNames),
		validator.MinNum("user_count", r.UserCount, 1),
	)
	if err != nil {
		return errors.Join(ErrInvalidRequest, err)
	}
	if err := r.PaymentMethod.Validate(); err != nil {
		return errors.Join(ErrInvalidRequest, err)
	}
	return nil
}

// Subscribe prices, charges and records a paid subscription.
//
// At most one attempt per SessionID runs at a time; a concurrent attempt
// fails with ErrPaymentInProgress without charging. On any failure the
// candidate subscription is discarded and the user is returned unchanged.
func (s *Service) Subscribe(ctx context.Context, req Request) (res Result) {
	defer s.recoverResult(ctx, "subscribe", req.User, &res)

	ctx = logger.WithSessionID(ctx, req.SessionID)
	log := s.logger.With(logger.UserID(req.User.ID), logger.Plan(req.Plan))

	if err := req.Validate(); err != nil {
		return failure(req.User, MsgInvalidRequest, err)
	}

	release, err := s.guard.Acquire(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, ErrPaymentInProgress) {
			return failure(req.User, MsgInProgress, err)
		}
		log.ErrorContext(ctx, "payment guard failed", logger.Error(err))
		return failure(req.User, MsgSomethingWrong, err)
	}
	defer release()

	var code promo.Code
	if req.PromoCode != "" && s.promos != nil {
		if code, err = s.promos.Check(ctx, req.PromoCode); err != nil {
			return failure(req.User, MsgInvalidPromo, err)
		}
	}

	candidate, err := s.factory.CreateSubscription(req.Plan, req.Cycle, req.UserCount, req.PaymentMethod, req.User.ID)
	if err != nil {
		return failure(req.User, MsgInvalidRequest, errors.Join(ErrInvalidRequest, err))
	}

	payCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	outcome := s.processor.Process(payCtx, candidate, req.PaymentMethod).Await(payCtx)
	if !outcome.Success {
		log.WarnContext(ctx, "payment failed",
			logger.SubscriptionID(candidate.ID),
			logger.Amount(candidate.Amount),
			logger.Duration(time.Since(started)),
			logger.Error(outcome.Err),
		)
		return failure(req.User, outcome.Error, outcome.Err)
	}

	entry, err := s.record(ctx, candidate, outcome.TransactionID)
	if err != nil {
		log.ErrorContext(ctx, "captured payment not recorded",
			logger.SubscriptionID(candidate.ID),
			logger.TransactionID(outcome.TransactionID),
			logger.Amount(candidate.Amount),
			logger.Error(err),
		)
		return failure(req.User, MsgLedgerFailed, errors.Join(ErrLedgerFailed, err))
	}

	if code.Code != "" {
		if _, err := s.promos.Redeem(ctx, code.Code); err != nil {
			log.WarnContext(ctx, "promo redemption not recorded", logger.PromoCode(code.Code), logger.Error(err))
		}
	}

	log.InfoContext(ctx, "subscription activated",
		logger.SubscriptionID(candidate.ID),
		logger.TransactionID(outcome.TransactionID),
		logger.EntryID(entry.ID),
		logger.Amount(candidate.Amount),
		logger.Duration(time.Since(started)),
	)

	return Result{
		Success:      true,
		Message:      MsgSubscribed,
		User:         req.User.WithSubscription(candidate),
		Subscription: candidate,
		Entry:        &entry,
		PromoCode:    code.Code,
	}
}

func (s *Service) record(ctx context.Context, sub *billing.Subscription, txID string) (ledger.Entry, error) {
	entry, err := s.builder.CreateBillingHistory(ctx, sub, txID, ledger.StatusPaid)
	if err != nil {
		return ledger.Entry{}, err
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return ledger.Entry{}, err
	}
	return entry, nil
}
