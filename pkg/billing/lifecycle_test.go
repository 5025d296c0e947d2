package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingkit/pkg/billing"
)

func activeSub(start time.Time) *billing.Subscription {
	end := start.AddDate(0, 1, 0)
	pm := billing.Card("4242", "visa", 12, 2030)
	return &billing.Subscription{
		ID:              "sub_1",
		UserID:          "u1",
		Plan:            billing.PlanPremium,
		BillingCycle:    billing.CycleMonthly,
		Status:          billing.StatusActive,
		StartDate:       start,
		EndDate:         end,
		NextBillingDate: end,
		Amount:          decimal.NewFromInt(114),
		Currency:        "INR",
		UserCount:       25,
		PaymentMethod:   &pm,
		AutoRenew:       true,
	}
}

func trialSub(start time.Time) *billing.Subscription {
	end := start.AddDate(0, 0, 30)
	return &billing.Subscription{
		ID:              "sub_t",
		UserID:          "u1",
		Plan:            billing.PlanStarter,
		BillingCycle:    billing.CycleMonthly,
		Status:          billing.StatusTrial,
		StartDate:       start,
		EndDate:         end,
		NextBillingDate: end,
		Amount:          decimal.Zero,
		UserCount:       1,
		TrialEndDate:    &end,
	}
}

func TestIsSubscriptionActive(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	sub := activeSub(start)

	assert.True(t, billing.IsSubscriptionActive(sub, start))
	assert.True(t, billing.IsSubscriptionActive(sub, sub.EndDate.Add(-time.Nanosecond)))
	assert.False(t, billing.IsSubscriptionActive(sub, sub.EndDate), "expires exactly at end date")
	assert.False(t, billing.IsSubscriptionActive(sub, sub.EndDate.AddDate(0, 0, 3)))
	assert.Equal(t, billing.StatusActive, sub.Status, "stored status untouched")

	cancelled := billing.CancelSubscription(sub)
	assert.False(t, billing.IsSubscriptionActive(cancelled, start))
	assert.False(t, billing.IsSubscriptionActive(nil, start))
}

func TestIsInTrial(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	sub := trialSub(start)

	assert.True(t, billing.IsInTrial(sub, start.AddDate(0, 0, 29)))
	assert.False(t, billing.IsInTrial(sub, *sub.TrialEndDate))

	noEnd := sub.Clone()
	noEnd.TrialEndDate = nil
	assert.False(t, billing.IsInTrial(noEnd, start))

	assert.False(t, billing.IsInTrial(activeSub(start), start))
	assert.False(t, billing.IsInTrial(nil, start))
}

func TestDaysUntilNextBilling(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	sub := activeSub(start) // next billing 2024-06-01

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"at start", start, 31},
		{"partial day rounds up", start.Add(time.Hour), 31},
		{"exactly one day left", sub.NextBillingDate.Add(-24 * time.Hour), 1},
		{"minutes left", sub.NextBillingDate.Add(-time.Minute), 1},
		{"at billing date", sub.NextBillingDate, 0},
		{"past billing date", sub.NextBillingDate.AddDate(0, 0, 5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, billing.DaysUntilNextBilling(sub, tt.now))
		})
	}

	assert.Equal(t, 0, billing.DaysUntilNextBilling(nil, start))
}

func TestCancelSubscription(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	sub := activeSub(start)
	before := *sub
	beforeMethod := *sub.PaymentMethod

	cancelled := billing.CancelSubscription(sub)
	require.NotNil(t, cancelled)
	require.NotSame(t, sub, cancelled)

	assert.Equal(t, billing.StatusCancelled, cancelled.Status)
	assert.False(t, cancelled.AutoRenew)

	// input untouched
	assert.Equal(t, billing.StatusActive, sub.Status)
	assert.True(t, sub.AutoRenew)
	assert.Equal(t, beforeMethod, *sub.PaymentMethod)

	// everything else preserved
	assert.Equal(t, before.ID, cancelled.ID)
	assert.Equal(t, before.StartDate, cancelled.StartDate)
	assert.Equal(t, before.EndDate, cancelled.EndDate)
	assert.Equal(t, before.NextBillingDate, cancelled.NextBillingDate)
	assert.True(t, before.Amount.Equal(cancelled.Amount))
	assert.Equal(t, before.UserCount, cancelled.UserCount)
	assert.Equal(t, beforeMethod, *cancelled.PaymentMethod)
	assert.NotSame(t, sub.PaymentMethod, cancelled.PaymentMethod)

	assert.Nil(t, billing.CancelSubscription(nil))
}

func TestDisplayStatus(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, billing.StatusTrial, billing.DisplayStatus(trialSub(start), start))
	assert.Equal(t, billing.StatusExpired, billing.DisplayStatus(trialSub(start), start.AddDate(0, 2, 0)))
	assert.Equal(t, billing.StatusActive, billing.DisplayStatus(activeSub(start), start))
	assert.Equal(t, billing.StatusExpired, billing.DisplayStatus(activeSub(start), start.AddDate(0, 2, 0)))
	assert.Equal(t, billing.StatusCancelled, billing.DisplayStatus(billing.CancelSubscription(activeSub(start)), start))
	assert.Equal(t, billing.StatusCancelled, billing.DisplayStatus(billing.CancelSubscription(activeSub(start)), start.AddDate(1, 0, 0)))
	assert.Equal(t, billing.StatusExpired, billing.DisplayStatus(nil, start))
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	assert.True(t, billing.CanTransition(billing.StatusTrial, billing.StatusActive))
	assert.True(t, billing.CanTransition(billing.StatusTrial, billing.StatusCancelled))
	assert.True(t, billing.CanTransition(billing.StatusActive, billing.StatusCancelled))
	assert.False(t, billing.CanTransition(billing.StatusCancelled, billing.StatusActive))
	assert.False(t, billing.CanTransition(billing.StatusActive, billing.StatusExpired))
	assert.False(t, billing.CanTransition(billing.StatusExpired, billing.StatusActive))
}

func TestSubscription_Validate(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, activeSub(start).Validate())
	assert.NoError(t, trialSub(start).Validate())

	bad := activeSub(start)
	bad.EndDate = bad.StartDate
	assert.ErrorIs(t, bad.Validate(), billing.ErrInvalidSubscription)

	paidTrial := trialSub(start)
	paidTrial.Amount = decimal.NewFromInt(5)
	assert.ErrorIs(t, paidTrial.Validate(), billing.ErrInvalidSubscription)

	noSeats := activeSub(start)
	noSeats.UserCount = 0
	err := noSeats.Validate()
	assert.ErrorIs(t, err, billing.ErrInvalidSubscription)
	assert.ErrorIs(t, err, billing.ErrInvalidUserCount)

	var nilSub *billing.Subscription
	assert.ErrorIs(t, nilSub.Validate(), billing.ErrNoSubscription)
}
