// Package decmath provides the exact decimal helpers used by the pricing
// core. Everything operates on shopspring decimals; float64 never enters
// the money path.
package decmath

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// rootPrecision is the working precision, in decimal digits, for root
// extraction. Results are truncated to this scale before being returned so
// that every caller sees the same value regardless of iteration count.
const rootPrecision = 40

var (
	// Wei is the 18 decimal fixed point scale (1e18).
	Wei = decimal.New(1, 18)
)

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// NthRoot computes x^(1/n) for x >= 0 and n >= 1 by Newton iteration at
// fixed working precision. The iteration is deterministic: the seed is
// derived from x with decimal arithmetic only, every division rounds at
// rootPrecision digits, and the result is truncated to rootPrecision
// digits. Two runs on any platform produce identical decimals.
func NthRoot(x decimal.Decimal, n int64) (decimal.Decimal, error) {
	if n < 1 {
		return decimal.Zero, fmt.Errorf("nth root undefined for n=%d", n)
	}
	if x.IsNegative() {
		return decimal.Zero, fmt.Errorf("nth root undefined for negative %s", x)
	}
	if x.IsZero() {
		return decimal.Zero, nil
	}
	if n == 1 {
		return x, nil
	}

	var (
		nDec  = decimal.NewFromInt(n)
		nLess = decimal.NewFromInt(n - 1)
		one   = decimal.New(1, 0)
		// First order seed around 1: y0 = 1 + (x-1)/n. For x in (0,1]
		// the seed sits above the root, for x > 1 as well, so Newton
		// descends monotonically in both regimes.
		y   = one.Add(x.Sub(one).DivRound(nDec, rootPrecision))
		eps = decimal.New(1, -(rootPrecision - 2))
	)
	if !y.IsPositive() {
		y = one
	}

	for i := 0; i < 200; i++ {
		next := nLess.Mul(y).
			Add(x.DivRound(y.Pow(nLess), rootPrecision)).
			DivRound(nDec, rootPrecision)

		if next.Sub(y).Abs().LessThan(eps) {
			return next.Truncate(rootPrecision), nil
		}
		y = next
	}
	return y.Truncate(rootPrecision), nil
}
