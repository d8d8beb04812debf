package chain

import (
	"context"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"github.com/smartcover/quote-api/internal/decmath"
	"github.com/smartcover/quote-api/internal/quote"
)

// Contracts names the protocol contracts the gateway reads from.
type Contracts struct {
	Staking   common.Address
	Pool      common.Address
	Quotation common.Address
}

// Client implements Gateway over an Ethereum JSON-RPC node. Every method
// is a single eth_call at the latest block; there is no caching and no
// retry, failures surface to the caller unmodified.
type Client struct {
	eth       *ethclient.Client
	contracts Contracts
}

func New(ctx context.Context, rpcURL string, contracts Contracts) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("ethclient.Dial: %w", err)
	}

	return &Client{
		eth:       eth,
		contracts: contracts,
	}, nil
}

var (
	selContractStake        = selector("contractStake(address)")
	selContractUnstakeTotal = selector("contractUnstakeTotal(address)")
	selMinCapReq            = selector("minCapReq()")
	selTokenPrice           = selector("tokenPrice()")
	selCurrencyRate         = selector("currencyRate(bytes4)")
)

func (c *Client) NetStakedCollateral(ctx context.Context, contract common.Address) (decimal.Decimal, error) {
	staked, err := c.callWord(ctx, c.contracts.Staking, callData(selContractStake, addressWord(contract)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("contractStake: %w", err)
	}

	unstaked, err := c.callWord(ctx, c.contracts.Staking, callData(selContractUnstakeTotal, addressWord(contract)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("contractUnstakeTotal: %w", err)
	}

	return decmath.Max(decimal.Zero, staked.Sub(unstaked)), nil
}

func (c *Client) MinimumCapital(ctx context.Context) (decimal.Decimal, error) {
	mcr, err := c.callWord(ctx, c.contracts.Pool, selMinCapReq)
	if err != nil {
		return decimal.Zero, fmt.Errorf("minCapReq: %w", err)
	}
	return mcr, nil
}

func (c *Client) TokenPrice(ctx context.Context) (decimal.Decimal, error) {
	price, err := c.callWord(ctx, c.contracts.Pool, selTokenPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("tokenPrice: %w", err)
	}
	return price, nil
}

func (c *Client) CurrencyRate(ctx context.Context, cur quote.Currency) (decimal.Decimal, error) {
	switch cur {
	case quote.CurrencyETH:
		// The base currency trades at par by definition.
		return decmath.Wei, nil
	case quote.CurrencyDAI:
		rate, err := c.callWord(ctx, c.contracts.Pool, callData(selCurrencyRate, currencyWord(cur)))
		if err != nil {
			return decimal.Zero, fmt.Errorf("currencyRate: %w", err)
		}
		return rate, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, cur)
	}
}

func (c *Client) VerifyingContractAddress() common.Address {
	return c.contracts.Quotation
}

// callWord issues an eth_call and decodes a single uint256 return word.
func (c *Client) callWord(ctx context.Context, to common.Address, data []byte) (decimal.Decimal, error) {
	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return decimal.Zero, err
	}
	if len(out) < 32 {
		return decimal.Zero, fmt.Errorf("short return data: %d bytes", len(out))
	}
	return decimal.NewFromBigInt(new(big.Int).SetBytes(out[:32]), 0), nil
}

func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4:4]
}

// callData assembles a selector plus 32 byte argument words.
func callData(sel []byte, args ...[]byte) []byte {
	data := make([]byte, 0, 4+32*len(args))
	data = append(data, sel...)
	for _, arg := range args {
		data = append(data, arg...)
	}
	return data
}

func addressWord(a common.Address) []byte {
	word := make([]byte, 32)
	copy(word[12:], a.Bytes())
	return word
}

func currencyWord(c quote.Currency) []byte {
	word := make([]byte, 32)
	copy(word[4-len(c):], []byte(c))
	return word
}
