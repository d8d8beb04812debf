package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartcover/quote-api/internal/decmath"
)

// quoteTTL is how long a quote stays acceptable on chain.
const quoteTTL = 3600 // seconds

// Engine assembles quotes from validated requests and market snapshots.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Quote prices a cover request against a market snapshot.
//
// Zero staked collateral short-circuits to the uncoverable shape, stamped
// with the same timestamps a coverable quote would carry. Otherwise the
// requested amount is converted to wei, clamped to the contract's capacity,
// priced on the risk curve, and converted back into the request currency
// and protocol token units. Inputs are assumed pre-validated; the only
// sanitation here is the zero-collateral branch.
func (e *Engine) Quote(req Request, market MarketSnapshot) (Quote, error) {
	generatedAt, expiresAt := e.timestamps()

	if !market.NetStakedCollateral.IsPositive() {
		return Quote{
			GeneratedAt: generatedAt,
			ExpiresAt:   expiresAt,
			Error:       ErrorUncoverable,
		}, nil
	}

	capacity := Capacity(market.NetStakedCollateral, market.TokenPrice, market.MinimumCapital)
	requestedWei := req.Amount.Mul(market.CurrencyRate)
	exposureWei := decmath.Min(capacity, requestedWei)

	risk, err := RiskCost(market.NetStakedCollateral)
	if err != nil {
		return Quote{}, err
	}

	priceWei := Price(exposureWei, risk, decimal.NewFromInt(int64(req.PeriodDays)))

	// Back into the request currency and into token units. Both
	// conversions truncate: an offered amount is whole currency units,
	// prices are 18 decimal fixed point integers.
	offered := exposureWei.DivRound(market.CurrencyRate, 40).Floor()
	price := priceWei.Shift(18).DivRound(market.CurrencyRate, 40).Floor()
	priceInNXM := priceWei.Shift(18).DivRound(market.TokenPrice, 40).Floor()

	return Quote{
		ContractAddress: req.ContractAddress,
		Currency:        req.Currency,
		PeriodDays:      req.PeriodDays,
		Amount:          offered,
		Price:           price,
		PriceInNXM:      priceInNXM,
		GeneratedAt:     generatedAt,
		ExpiresAt:       expiresAt,
	}, nil
}

// timestamps returns the generation time in Unix milliseconds and the
// expiry in Unix seconds, exactly ceil(generatedAt/1000) + 3600.
func (e *Engine) timestamps() (generatedAt, expiresAt int64) {
	generatedAt = e.now().UnixMilli()

	seconds := generatedAt / 1000
	if generatedAt%1000 != 0 {
		seconds++
	}
	return generatedAt, seconds + quoteTTL
}
