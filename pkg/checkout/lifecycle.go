package checkout

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/ledger"
	"github.com/dmitrymomot/billingkit/pkg/logger"
)

// StartTrial gives user a free trial of plan. Users with a running trial or
// an effectively active subscription are refused.
func (s *Service) StartTrial(ctx context.Context, user billing.User, plan billing.Plan, userCount int) (res Result) {
	defer s.recoverResult(ctx, "start_trial", user, &res)

	now := s.clock.Now()
	if billing.IsInTrial(user.Subscription, now) || billing.IsSubscriptionActive(user.Subscription, now) {
		return failure(user, MsgAlreadyRunning, ErrAlreadySubscribed)
	}

	sub, err := s.factory.StartTrialSubscription(plan, userCount, user.ID)
	if err != nil {
		return failure(user, MsgInvalidRequest, err)
	}

	s.logger.InfoContext(ctx, "trial started",
		logger.UserID(user.ID),
		logger.SubscriptionID(sub.ID),
		logger.Plan(plan),
	)
	return Result{
		Success:      true,
		Message:      MsgTrialStarted,
		User:         user.WithSubscription(sub),
		Subscription: sub,
	}
}

// Cancel switches the user's subscription to cancelled and turns off
// auto-renew. Dates and amount are kept.
func (s *Service) Cancel(ctx context.Context, user billing.User) (res Result) {
	defer s.recoverResult(ctx, "cancel", user, &res)

	if user.Subscription == nil {
		return failure(user, MsgNoSubscription, billing.ErrNoSubscription)
	}
	if !billing.CanTransition(user.Subscription.Status, billing.StatusCancelled) {
		return failure(user, MsgAlreadyCancelled, billing.ErrInvalidTransition)
	}

	cancelled := billing.CancelSubscription(user.Subscription)
	s.logger.InfoContext(ctx, "subscription cancelled",
		logger.UserID(user.ID),
		logger.SubscriptionID(cancelled.ID),
	)
	return Result{
		Success:      true,
		Message:      MsgCancelled,
		User:         user.WithSubscription(cancelled),
		Subscription: cancelled,
	}
}

// StatusReport is the read-time view of a user's subscription.
type StatusReport struct {
	Status               billing.Status       `json:"status"`
	Plan                 billing.Plan         `json:"plan,omitempty"`
	Cycle                billing.BillingCycle `json:"cycle,omitempty"`
	Active               bool                 `json:"active"`
	InTrial              bool                 `json:"in_trial"`
	DaysUntilNextBilling int                  `json:"days_until_next_billing"`
	NextBillingDate      *time.Time           `json:"next_billing_date,omitempty"`
	AutoRenew            bool                 `json:"auto_renew"`
}

// Status derives the current status of the user's subscription. If the
// derivation panics, the report degrades to an expired, inactive view.
func (s *Service) Status(user billing.User) (report StatusReport) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("checkout operation panicked",
				slog.String("operation", "status"),
				slog.Any("panic", r),
				logger.UserID(user.ID),
			)
			report = StatusReport{Status: billing.StatusExpired}
		}
	}()

	now := s.clock.Now()
	sub := user.Subscription

	report = StatusReport{
		Status:               billing.DisplayStatus(sub, now),
		Active:               billing.IsSubscriptionActive(sub, now),
		InTrial:              billing.IsInTrial(sub, now),
		DaysUntilNextBilling: billing.DaysUntilNextBilling(sub, now),
	}
	if sub != nil {
		next := sub.NextBillingDate
		report.Plan = sub.Plan
		report.Cycle = sub.BillingCycle
		report.NextBillingDate = &next
		report.AutoRenew = sub.AutoRenew
	}
	return report
}

// History lists the billing history of a subscription in recording order.
func (s *Service) History(ctx context.Context, subscriptionID string) (entries []ledger.Entry, err error) {
	defer s.recoverErr(ctx, "history", &err)
	return s.store.ListBySubscription(ctx, subscriptionID)
}
