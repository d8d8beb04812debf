package quote

import "github.com/shopspring/decimal"

var (
	// surplusMargin is the fixed 30% load covering operating costs.
	surplusMargin = decimal.RequireFromString("0.3")
	daysPerYear   = decimal.RequireFromString("365.25")

	onePlusMargin = one.Add(surplusMargin)
)

// Price computes the premium in wei for an already capacity-capped
// exposure:
//
//	price = exposure * risk/100 * (1 + 0.3) * days/365.25
//
// Linear in both exposure and period. The division happens once, at high
// precision, so the result is deterministic; the caller truncates at its
// conversion boundary.
func Price(exposureWei, risk, periodDays decimal.Decimal) decimal.Decimal {
	return exposureWei.
		Mul(risk).
		Mul(onePlusMargin).
		Mul(periodDays).
		DivRound(hundred.Mul(daysPerYear), 40)
}
