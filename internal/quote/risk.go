package quote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smartcover/quote-api/internal/decmath"
)

var (
	// stakedLimit is the stake level, in 18 decimal token units, at which
	// the curve bottoms out: 200,000 tokens.
	stakedLimit = decimal.New(200_000, 18)

	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// RiskCost maps net staked collateral (18 decimal token units) to a risk
// percentage via
//
//	risk = max(1, 100 * (1 - (staked / 200000e18)^(1/7)))
//
// The curve is non-increasing in staked and floored at 1: cover is never
// priced risk free, however deep the stake. Zero stake conceptually maps to
// 100 but is intercepted as uncoverable before pricing.
func RiskCost(stakedCollateral decimal.Decimal) (decimal.Decimal, error) {
	ratio := stakedCollateral.DivRound(stakedLimit, 40)
	root, err := decmath.NthRoot(ratio, 7)
	if err != nil {
		return decimal.Zero, fmt.Errorf("risk curve: %w", err)
	}

	risk := one.Sub(root).Mul(hundred)
	return decmath.Max(one, risk), nil
}
