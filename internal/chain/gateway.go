// Package chain supplies the on-chain market data a quote is priced
// against. The pricing core never talks to a node; it consumes whatever a
// Gateway hands it.
package chain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/smartcover/quote-api/internal/quote"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Gateway is the read-only view of chain state the quote flow needs. The
// reads are independent: callers may issue them concurrently, and two reads
// can legitimately observe different moments in chain history. There is no
// snapshot mechanism; the values fetched for one request are authoritative
// for that request.
type Gateway interface {
	// NetStakedCollateral is the staked token amount backing a contract,
	// net of pending unstakes, as an 18 decimal fixed point value.
	NetStakedCollateral(ctx context.Context, contract common.Address) (decimal.Decimal, error)
	// MinimumCapital is the last posted protocol wide minimum capital
	// requirement in wei.
	MinimumCapital(ctx context.Context) (decimal.Decimal, error)
	// TokenPrice is the current protocol token price in wei.
	TokenPrice(ctx context.Context) (decimal.Decimal, error)
	// CurrencyRate is wei per unit of currency. Fails with
	// ErrUnsupportedCurrency outside the enumerated set.
	CurrencyRate(ctx context.Context, c quote.Currency) (decimal.Decimal, error)
	// VerifyingContractAddress is the on-chain contract that will check
	// quote signatures.
	VerifyingContractAddress() common.Address
}
