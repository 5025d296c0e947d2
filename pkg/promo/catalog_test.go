package promo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingkit/pkg/billing"
	"github.com/dmitrymomot/billingkit/pkg/promo"
)

func TestCode_Apply(t *testing.T) {
	t.Parallel()

	save10, ok := promo.DefaultCatalog().Lookup("save10")
	require.True(t, ok)

	total := decimal.NewFromInt(684)
	assert.Equal(t, "615.6", save10.Apply(total).String())
	assert.Equal(t, "68.4", save10.Discount(total).String())
	assert.Equal(t, "684", total.String())

	free := promo.Code{Code: "ZERO"}
	assert.True(t, free.Apply(total).Equal(total))
}

func TestCode_ApplyLeavesSubscriptionAmount(t *testing.T) {
	t.Parallel()

	f := billing.NewFactory(billing.DefaultCatalog())
	sub, err := f.CreateSubscription(billing.PlanPremium, billing.CycleYearly, 25, billing.UPI("jane@okbank"), "u1")
	require.NoError(t, err)

	save10, _ := promo.DefaultCatalog().Lookup("SAVE10")
	shown := save10.Apply(sub.Amount)

	assert.Equal(t, "615.6", shown.String())
	assert.Equal(t, "684", sub.Amount.String())
}

func TestParseCodesYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
codes:
  - code: launch25
    percent_off: 25
    expires_at: 2025-01-01T00:00:00Z
    max_redemptions: 100
  - code: SAVE10
    percent_off: 10
`)
	codes, err := promo.ParseCodesYAML(data)
	require.NoError(t, err)
	require.Len(t, codes, 2)
	require.NotNil(t, codes[0].ExpiresAt)
	assert.True(t, codes[0].ExpiresAt.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 100, codes[0].MaxRedemptions)

	path := filepath.Join(t.TempDir(), "promo.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	catalog, err := promo.NewCatalogFromConfig(context.Background(), promo.Config{CatalogPath: path})
	require.NoError(t, err)
	c, ok := catalog.Lookup(" Launch25 ")
	require.True(t, ok)
	assert.Equal(t, "LAUNCH25", c.Code)
	assert.Len(t, catalog.Codes(), 2)
}

func TestNewCatalog_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		name  string
		codes []promo.Code
	}{
		{"empty code", []promo.Code{{Code: "  ", PercentOff: decimal.NewFromInt(5)}}},
		{"over hundred", []promo.Code{{Code: "X", PercentOff: decimal.NewFromInt(101)}}},
		{"negative", []promo.Code{{Code: "X", PercentOff: decimal.NewFromInt(-1)}}},
		{"negative limit", []promo.Code{{Code: "X", MaxRedemptions: -1}}},
		{"duplicate after normalize", []promo.Code{{Code: "x"}, {Code: "X "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := promo.NewCatalog(ctx, promo.NewStaticSource(tt.codes...))
			assert.ErrorIs(t, err, promo.ErrInvalidCode)
		})
	}

	_, err := promo.NewCatalog(ctx, promo.NewYAMLSource(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorIs(t, err, promo.ErrFailedToLoadCodes)
}
