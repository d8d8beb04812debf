package quote

import (
	"github.com/shopspring/decimal"

	"github.com/smartcover/quote-api/internal/decmath"
)

// capacityFactor caps any single contract at 20% of the protocol's global
// minimum capital, bounding concentration risk.
var capacityFactor = decimal.RequireFromString("0.2")

// Capacity returns the maximum insurable exposure for a contract in wei:
// the staked collateral's wei value, capped at 20% of the global minimum
// capital. Zero staked collateral yields zero capacity.
func Capacity(stakedCollateral, tokenPrice, minimumCapital decimal.Decimal) decimal.Decimal {
	stakedValue := stakedCollateral.Mul(tokenPrice).Shift(-18)
	ceiling := minimumCapital.Mul(capacityFactor)
	return decmath.Min(stakedValue, ceiling)
}
