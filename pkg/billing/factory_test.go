package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingkit/pkg/billing"
)

func newFactory(now time.Time, opts ...billing.FactoryOption) *billing.Factory {
	opts = append([]billing.FactoryOption{billing.WithClock(billing.FixedClock(now))}, opts...)
	return billing.NewFactory(billing.DefaultCatalog(), opts...)
}

func visa() billing.PaymentMethod {
	return billing.Card("4242", "visa", 12, 2030)
}

func TestFactory_CreateSubscription(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

	t.Run("builds active monthly subscription", func(t *testing.T) {
		t.Parallel()
		f := newFactory(now)

		sub, err := f.CreateSubscription(billing.PlanPremium, billing.CycleMonthly, 25, visa(), "u1")
		require.NoError(t, err)

		assert.NotEmpty(t, sub.ID)
		assert.Equal(t, "u1", sub.UserID)
		assert.Equal(t, billing.StatusActive, sub.Status)
		assert.Equal(t, now, sub.StartDate)
		assert.Equal(t, time.Date(2024, time.April, 15, 9, 30, 0, 0, time.UTC), sub.EndDate)
		assert.Equal(t, sub.EndDate, sub.NextBillingDate)
		assert.Equal(t, "114", sub.Amount.String())
		assert.Equal(t, billing.DefaultCurrency, sub.Currency)
		assert.True(t, sub.AutoRenew)
		assert.Nil(t, sub.TrialEndDate)
		require.NotNil(t, sub.PaymentMethod)
		assert.Equal(t, billing.MethodCard, sub.PaymentMethod.Type)
		assert.NoError(t, sub.Validate())
	})

	t.Run("rejects expired card", func(t *testing.T) {
		t.Parallel()
		f := newFactory(now)

		_, err := f.CreateSubscription(billing.PlanPremium, billing.CycleMonthly, 25, billing.Card("4242", "visa", 2, 2024), "u1")
		assert.ErrorIs(t, err, billing.ErrInvalidPaymentMethod)
		assert.ErrorIs(t, err, billing.ErrCardExpired)

		_, err = f.CreateSubscription(billing.PlanPremium, billing.CycleMonthly, 25, billing.Card("4242", "visa", 3, 2024), "u1")
		assert.NoError(t, err)
	})

	t.Run("yearly ends one calendar year later", func(t *testing.T) {
		t.Parallel()
		f := newFactory(now)

		sub, err := f.CreateSubscription(billing.PlanPremium, billing.CycleYearly, 25, visa(), "u1")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC), sub.EndDate)
		assert.Equal(t, "684", sub.Amount.String())
	})

	t.Run("jan 31 monthly does not roll into march", func(t *testing.T) {
		t.Parallel()
		f := newFactory(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))

		sub, err := f.CreateSubscription(billing.PlanStarter, billing.CycleMonthly, 1, visa(), "u1")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), sub.EndDate)
	})

	t.Run("unique ids per creation", func(t *testing.T) {
		t.Parallel()
		f := newFactory(now)
		a, err := f.CreateSubscription(billing.PlanStarter, billing.CycleMonthly, 1, visa(), "u1")
		require.NoError(t, err)
		b, err := f.CreateSubscription(billing.PlanStarter, billing.CycleMonthly, 1, visa(), "u1")
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("custom id generator and currency", func(t *testing.T) {
		t.Parallel()
		f := newFactory(now,
			billing.WithIDGenerator(func() string { return "sub_fixed" }),
			billing.WithCurrency("usd"),
		)
		sub, err := f.CreateSubscription(billing.PlanStarter, billing.CycleMonthly, 1, billing.UPI("jane@okbank"), "u1")
		require.NoError(t, err)
		assert.Equal(t, "sub_fixed", sub.ID)
		assert.Equal(t, "USD", sub.Currency)
	})

	t.Run("free plan is active at zero", func(t *testing.T) {
		t.Parallel()
		f := newFactory(now)
		sub, err := f.CreateSubscription(billing.PlanFree, billing.CycleMonthly, 3, billing.NetBanking("HDFC"), "u1")
		require.NoError(t, err)
		assert.True(t, sub.Amount.IsZero())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()
		f := newFactory(now)

		_, err := f.CreateSubscription(billing.PlanPremium, billing.CycleMonthly, 0, visa(), "u1")
		assert.ErrorIs(t, err, billing.ErrInvalidUserCount)

		_, err = f.CreateSubscription(billing.PlanPremium, billing.CycleMonthly, 1, visa(), "")
		assert.ErrorIs(t, err, billing.ErrMissingUserID)

		_, err = f.CreateSubscription(billing.PlanPremium, billing.CycleMonthly, 1, billing.PaymentMethod{Type: "cash"}, "u1")
		assert.ErrorIs(t, err, billing.ErrInvalidPaymentMethod)

		_, err = f.CreateSubscription("gold", billing.CycleMonthly, 1, visa(), "u1")
		assert.ErrorIs(t, err, billing.ErrPlanNotFound)
	})
}

func TestFactory_StartTrialSubscription(t *testing.T) {
	t.Parallel()

	t.Run("starter trial scenario", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
		f := newFactory(now)

		sub, err := f.StartTrialSubscription(billing.PlanStarter, 12, "u1")
		require.NoError(t, err)

		assert.Equal(t, billing.StatusTrial, sub.Status)
		assert.True(t, sub.Amount.IsZero())
		assert.False(t, sub.AutoRenew)
		assert.Nil(t, sub.PaymentMethod)
		require.NotNil(t, sub.TrialEndDate)
		want := time.Date(2024, time.February, 9, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, want, *sub.TrialEndDate)
		assert.Equal(t, want, sub.EndDate)
		assert.Equal(t, sub.StartDate.AddDate(0, 0, 30), *sub.TrialEndDate)
		assert.Equal(t, 12, sub.UserCount)
		assert.NoError(t, sub.Validate())
	})

	t.Run("trial length is configurable", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
		f := newFactory(now, billing.WithTrialDays(14))

		sub, err := f.StartTrialSubscription(billing.PlanPremium, 1, "u1")
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, 14), *sub.TrialEndDate)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()
		f := newFactory(time.Now())

		_, err := f.StartTrialSubscription(billing.PlanPremium, 0, "u1")
		assert.ErrorIs(t, err, billing.ErrInvalidUserCount)

		_, err = f.StartTrialSubscription("gold", 1, "u1")
		assert.ErrorIs(t, err, billing.ErrPlanNotFound)

		_, err = f.StartTrialSubscription(billing.PlanPremium, 1, "")
		assert.ErrorIs(t, err, billing.ErrMissingUserID)
	})
}

func TestNewFactory_PanicsWithoutCatalog(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { billing.NewFactory(nil) })
}
