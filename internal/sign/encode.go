// Package sign turns an assembled coverable quote into the recoverable
// secp256k1 signature the on-chain Quotation contract verifies. The packed
// encoding below is a wire contract: the verifier re-derives the exact same
// bytes, so any deviation in field order, width, or padding silently
// produces quotes that never verify.
package sign

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/smartcover/quote-api/internal/quote"
)

// EncodedLen is the byte length of a packed quote:
// uint256 + bytes4 + uint16 + address + 4*uint256 + address.
const EncodedLen = 32 + 4 + 2 + 20 + 32 + 32 + 32 + 32 + 20

var maxWord = new(big.Int).Lsh(big.NewInt(1), 256)

// EncodeQuote packs a coverable quote and the verifying contract address
// into the canonical byte layout, tightly packed with no padding between
// fields:
//
//	amount     uint256  offered cover, whole currency units
//	currency   bytes4   ASCII code, left padded with zeros
//	period     uint16   days
//	contract   address  covered contract
//	price      uint256  premium, currency fixed point
//	priceInNXM uint256  premium, token fixed point
//	expiresAt  uint256  Unix seconds
//	generatedAt uint256 Unix milliseconds
//	verifying  address  quotation contract checking the signature
func EncodeQuote(q quote.Quote, verifyingContract common.Address) ([]byte, error) {
	amount, err := word(q.Amount, "amount")
	if err != nil {
		return nil, err
	}
	currency, err := currencyBytes(q.Currency)
	if err != nil {
		return nil, err
	}
	if q.PeriodDays < 0 || q.PeriodDays > 0xffff {
		return nil, fmt.Errorf("period %d does not fit uint16", q.PeriodDays)
	}
	price, err := word(q.Price, "price")
	if err != nil {
		return nil, err
	}
	priceInNXM, err := word(q.PriceInNXM, "priceInNXM")
	if err != nil {
		return nil, err
	}
	expiresAt, err := word(decimal.NewFromInt(q.ExpiresAt), "expiresAt")
	if err != nil {
		return nil, err
	}
	generatedAt, err := word(decimal.NewFromInt(q.GeneratedAt), "generatedAt")
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, EncodedLen)
	buf = append(buf, amount[:]...)
	buf = append(buf, currency[:]...)
	buf = append(buf, byte(q.PeriodDays>>8), byte(q.PeriodDays))
	buf = append(buf, q.ContractAddress.Bytes()...)
	buf = append(buf, price[:]...)
	buf = append(buf, priceInNXM[:]...)
	buf = append(buf, expiresAt[:]...)
	buf = append(buf, generatedAt[:]...)
	buf = append(buf, verifyingContract.Bytes()...)
	return buf, nil
}

// word renders a non-negative integer-valued decimal as a 32 byte big
// endian uint256.
func word(d decimal.Decimal, field string) ([32]byte, error) {
	var w [32]byte
	if d.IsNegative() {
		return w, fmt.Errorf("%s is negative: %s", field, d)
	}
	if !d.Equal(d.Truncate(0)) {
		return w, fmt.Errorf("%s is not integer valued: %s", field, d)
	}

	n := d.BigInt()
	if n.Cmp(maxWord) >= 0 {
		return w, fmt.Errorf("%s overflows uint256: %s", field, d)
	}
	n.FillBytes(w[:])
	return w, nil
}

// currencyBytes renders the currency's ASCII code as bytes4, left padded.
func currencyBytes(c quote.Currency) ([4]byte, error) {
	var b [4]byte
	code := []byte(c)
	if len(code) == 0 || len(code) > 4 {
		return b, fmt.Errorf("currency %q does not fit bytes4", c)
	}
	copy(b[4-len(code):], code)
	return b, nil
}
