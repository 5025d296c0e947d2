package billing

import "github.com/shopspring/decimal"

// seatBlockSize is the number of seats covered by one user multiplier step.
const seatBlockSize = 10

var months = decimal.NewFromInt(12)

// PlanConfig holds the pricing parameters of a plan.
type PlanConfig struct {
	Plan           Plan            `yaml:"plan" json:"plan"`
	Name           string          `yaml:"name" json:"name"`
	BasePrice      decimal.Decimal `yaml:"base_price" json:"base_price"`
	UserMultiplier decimal.Decimal `yaml:"user_multiplier" json:"user_multiplier"`
	YearlyDiscount decimal.Decimal `yaml:"yearly_discount" json:"yearly_discount"` // fraction of the annualized total, 0.5 = 50% off
}

// Pricing is the price breakdown for a plan, seat count and cycle.
type Pricing struct {
	MonthlyPrice  decimal.Decimal `json:"monthly_price"`
	YearlyPrice   decimal.Decimal `json:"yearly_price"`
	YearlySavings decimal.Decimal `json:"yearly_savings"`
	DisplayPrice  decimal.Decimal `json:"display_price"` // ActualPrice rounded to whole currency units
	ActualPrice   decimal.Decimal `json:"actual_price"`
}

// SeatBlocks returns the number of ten-seat blocks needed for userCount seats.
// A single seat over a block boundary starts the next block.
func SeatBlocks(userCount int) int {
	if userCount < 1 {
		return 0
	}
	return (userCount + seatBlockSize - 1) / seatBlockSize
}

// CalculatePricing maps a plan config, seat count and cycle to a price breakdown.
// It is pure and deterministic. The free plan always prices at zero.
func CalculatePricing(cfg PlanConfig, userCount int, cycle BillingCycle) Pricing {
	if cfg.Plan == PlanFree {
		return Pricing{
			MonthlyPrice:  decimal.Zero,
			YearlyPrice:   decimal.Zero,
			YearlySavings: decimal.Zero,
			DisplayPrice:  decimal.Zero,
			ActualPrice:   decimal.Zero,
		}
	}

	blocks := decimal.NewFromInt(int64(SeatBlocks(userCount)))
	monthly := cfg.BasePrice.Add(blocks.Mul(cfg.UserMultiplier))
	annualized := monthly.Mul(months)
	yearly := annualized.Mul(decimal.NewFromInt(1).Sub(cfg.YearlyDiscount))

	actual := monthly
	if cycle == CycleYearly {
		actual = yearly
	}

	return Pricing{
		MonthlyPrice:  monthly,
		YearlyPrice:   yearly,
		YearlySavings: annualized.Sub(yearly),
		DisplayPrice:  actual.Round(0),
		ActualPrice:   actual,
	}
}
