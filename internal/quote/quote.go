// Package quote implements the cover pricing core: capacity capping, the
// risk curve over staked collateral, premium pricing, and quote assembly.
// Everything here is a pure function over an already fetched market
// snapshot; chain access lives in internal/chain.
package quote

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyETH Currency = "ETH"
	CurrencyDAI Currency = "DAI"
)

// Currencies lists every currency a cover may be requested in.
var Currencies = []Currency{CurrencyETH, CurrencyDAI}

func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

// Request is a validated cover request. Amount is in whole units of
// Currency. Immutable once received.
type Request struct {
	ContractAddress common.Address
	Amount          decimal.Decimal
	Currency        Currency
	PeriodDays      int
}

// MarketSnapshot carries the chain reads a single quote computation is
// priced against. The reads are independent and are not an atomic view of
// chain state; whatever values land here are authoritative for this
// computation.
type MarketSnapshot struct {
	// CurrencyRate is wei per unit of the request currency.
	CurrencyRate decimal.Decimal
	// TokenPrice is wei per protocol token.
	TokenPrice decimal.Decimal
	// NetStakedCollateral is staked tokens backing the contract, as an
	// 18 decimal fixed point token amount, net of pending unstakes.
	NetStakedCollateral decimal.Decimal
	// MinimumCapital is the protocol wide minimum capital in wei.
	MinimumCapital decimal.Decimal
}

// ErrorUncoverable tags a quote for a contract with no staked collateral.
const ErrorUncoverable = "Uncoverable"

// Quote is the outcome of a pricing run. It is one of two shapes: a
// coverable quote with pricing fields set, or an uncoverable one carrying
// only the Error tag and timestamps. Callers branch on Coverable rather
// than on an error return; uncoverable is a business outcome, not a fault.
type Quote struct {
	// ContractAddress is the covered contract, echoed from the request.
	ContractAddress common.Address
	Currency        Currency
	PeriodDays      int
	// Amount is the offered cover in whole currency units. Never exceeds
	// the requested amount or the contract's capacity.
	Amount decimal.Decimal
	// Price is the premium in the cover currency as an 18 decimal fixed
	// point integer.
	Price decimal.Decimal
	// PriceInNXM is the premium in protocol tokens, same fixed point.
	PriceInNXM decimal.Decimal
	// GeneratedAt is Unix milliseconds, ExpiresAt Unix seconds. Always
	// ExpiresAt == ceil(GeneratedAt/1000) + 3600.
	GeneratedAt int64
	ExpiresAt   int64

	// Error is empty for coverable quotes and ErrorUncoverable otherwise.
	Error string
}

func (q Quote) Coverable() bool {
	return q.Error == ""
}
