package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tokens(n int64) decimal.Decimal {
	return decimal.New(n, 18)
}

func TestRiskCost(t *testing.T) {
	var tests = []struct {
		name   string
		staked decimal.Decimal
		min    string
		max    string
	}{
		// 120,000 tokens: risk = 100*(1 - 0.6^(1/7)) ~ 7.0376
		{name: "mid stake", staked: tokens(120_000), min: "7.03", max: "7.04"},
		// 180,000 tokens: 100*(1 - 0.9^(1/7)) ~ 1.4939
		{name: "deep stake", staked: tokens(180_000), min: "1.49", max: "1.50"},
		// Above the 200,000 limit the curve goes negative and floors at 1.
		{name: "past limit", staked: tokens(220_000), min: "1", max: "1"},
		{name: "enormous stake", staked: tokens(10_000_000), min: "1", max: "1"},
		// Zero stake is conceptually 100; the engine intercepts it first.
		{name: "zero stake", staked: decimal.Zero, min: "100", max: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk, err := RiskCost(tt.staked)
			assert.NoError(t, err)
			assert.True(t, risk.GreaterThanOrEqual(decimal.RequireFromString(tt.min)),
				"risk %s below %s", risk, tt.min)
			assert.True(t, risk.LessThanOrEqual(decimal.RequireFromString(tt.max)),
				"risk %s above %s", risk, tt.max)
		})
	}
}

// The curve never rises as stake grows and never drops below 1.
func TestRiskCostMonotonic(t *testing.T) {
	stakes := []int64{1, 100, 5_000, 50_000, 120_000, 180_000, 199_999, 200_000, 500_000}

	prev, err := RiskCost(tokens(stakes[0]))
	assert.NoError(t, err)

	for _, s := range stakes[1:] {
		risk, err := RiskCost(tokens(s))
		assert.NoError(t, err)
		assert.True(t, risk.LessThanOrEqual(prev),
			"risk rose from %s to %s at %d tokens", prev, risk, s)
		assert.True(t, risk.GreaterThanOrEqual(decimal.NewFromInt(1)))
		prev = risk
	}
}
