package validate

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcover/quote-api/internal/quote"
)

func validParams() QuoteParams {
	return QuoteParams{
		ContractAddress: "0x1bde2a0cab95fb3df4fa1ba9faeac9b1091dd2a5",
		CoverAmount:     "1000",
		Currency:        "ETH",
		Period:          "365",
	}
}

func TestQuoteRequestValid(t *testing.T) {
	var tests = []struct {
		name   string
		mutate func(*QuoteParams)
	}{
		{name: "all fields", mutate: func(p *QuoteParams) {}},
		{name: "bare address", mutate: func(p *QuoteParams) {
			p.ContractAddress = "1bde2a0cab95fb3df4fa1ba9faeac9b1091dd2a5"
		}},
		{name: "uppercase address", mutate: func(p *QuoteParams) {
			p.ContractAddress = "0x1BDE2A0CAB95FB3DF4FA1BA9FAEAC9B1091DD2A5"
		}},
		{name: "DAI", mutate: func(p *QuoteParams) { p.Currency = "DAI" }},
		{name: "minimum period", mutate: func(p *QuoteParams) { p.Period = "30" }},
		{name: "maximum period", mutate: func(p *QuoteParams) { p.Period = "365" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)

			req, err := QuoteRequest(params)
			require.NoError(t, err)

			assert.Equal(t, common.HexToAddress(params.ContractAddress), req.ContractAddress)
			assert.True(t, req.Amount.Equal(decimal.RequireFromString(params.CoverAmount)))
			assert.Equal(t, quote.Currency(params.Currency), req.Currency)
		})
	}
}

func TestQuoteRequestInvalid(t *testing.T) {
	var tests = []struct {
		name       string
		mutate     func(*QuoteParams)
		violations int
	}{
		{name: "address too short", mutate: func(p *QuoteParams) { p.ContractAddress = "0x1234" }, violations: 1},
		{name: "address not hex", mutate: func(p *QuoteParams) {
			p.ContractAddress = "0xzzde2a0cab95fb3df4fa1ba9faeac9b1091dd2a5"
		}, violations: 1},
		{name: "missing address", mutate: func(p *QuoteParams) { p.ContractAddress = "" }, violations: 1},
		{name: "zero amount", mutate: func(p *QuoteParams) { p.CoverAmount = "0" }, violations: 1},
		{name: "negative amount", mutate: func(p *QuoteParams) { p.CoverAmount = "-5" }, violations: 1},
		{name: "fractional amount", mutate: func(p *QuoteParams) { p.CoverAmount = "10.5" }, violations: 1},
		{name: "unknown currency", mutate: func(p *QuoteParams) { p.Currency = "BTC" }, violations: 1},
		{name: "period too short", mutate: func(p *QuoteParams) { p.Period = "29" }, violations: 1},
		{name: "period too long", mutate: func(p *QuoteParams) { p.Period = "366" }, violations: 1},
		{name: "period not a number", mutate: func(p *QuoteParams) { p.Period = "a year" }, violations: 1},
		{
			name: "everything wrong at once",
			mutate: func(p *QuoteParams) {
				p.ContractAddress = "nope"
				p.CoverAmount = "-1"
				p.Currency = "XMR"
				p.Period = "7"
			},
			violations: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)

			_, err := QuoteRequest(params)
			require.Error(t, err)

			verr, ok := err.(*Error)
			require.True(t, ok, "expected *Error, got %T", err)
			assert.Len(t, verr.Violations, tt.violations, "violations: %v", verr.Violations)
		})
	}
}

func TestContractAddress(t *testing.T) {
	addr, err := ContractAddress("0x1bde2a0cab95fb3df4fa1ba9faeac9b1091dd2a5")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x1bde2a0cab95fb3df4fa1ba9faeac9b1091dd2a5"), addr)

	_, err = ContractAddress("0x1234")
	require.Error(t, err)

	verr, ok := err.(*Error)
	require.True(t, ok)
	assert.Len(t, verr.Violations, 1)
}
