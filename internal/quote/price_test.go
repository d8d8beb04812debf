package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	// A full 365.25 day year cancels the day count: price = A * R/100 * 1.3.
	exposure := decimal.New(1000, 18)
	risk := decimal.NewFromInt(10)

	got := Price(exposure, risk, decimal.RequireFromString("365.25"))
	want := decimal.New(130, 18)
	assert.True(t, got.Sub(want).Abs().LessThan(decimal.New(1, 0)),
		"got %s want %s", got, want)
}

func TestPriceLinearInPeriod(t *testing.T) {
	var (
		exposure = decimal.New(12345, 18)
		risk     = decimal.RequireFromString("7.0376")
		tol      = decimal.New(1, -10)
	)

	for _, days := range []int64{30, 90, 180} {
		d := decimal.NewFromInt(days)

		single := Price(exposure, risk, d)
		double := Price(exposure, risk, d.Mul(decimal.NewFromInt(2)))

		assert.True(t, double.Sub(single.Mul(decimal.NewFromInt(2))).Abs().LessThan(tol),
			"doubling %d days did not double the price", days)
	}
}

func TestPriceLinearInAmount(t *testing.T) {
	var (
		risk = decimal.RequireFromString("1.5")
		d    = decimal.NewFromInt(365)
		tol  = decimal.New(1, -10)
	)

	one := Price(decimal.New(1, 18), risk, d)
	thousand := Price(decimal.New(1000, 18), risk, d)

	assert.True(t, thousand.Sub(one.Mul(decimal.NewFromInt(1000))).Abs().LessThan(tol))
}

func TestPriceZeroExposure(t *testing.T) {
	got := Price(decimal.Zero, decimal.NewFromInt(50), decimal.NewFromInt(365))
	assert.True(t, got.IsZero())
}
