package sign

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/smartcover/quote-api/internal/quote"
)

var ErrUncoverable = errors.New("uncoverable quotes cannot be signed")

// personalPrefix is the standard Ethereum signed-message envelope for a
// 32 byte payload, matching ecrecover's expectation on chain.
var personalPrefix = []byte("\x19Ethereum Signed Message:\n32")

// Signature is a recoverable secp256k1 signature in the form the Quotation
// contract consumes: v is 27 or 28, r and s are 32 byte big endian scalars.
// All three serialize as 0x-prefixed hex.
type Signature struct {
	V string `json:"v"`
	R string `json:"r"`
	S string `json:"s"`
}

// Signer signs assembled quotes with a fixed private key. The key never
// leaves the struct and is never logged.
type Signer struct {
	key *ecdsa.PrivateKey
}

// New derives a Signer from a hex encoded secp256k1 private key.
func New(privateKeyHex string) (*Signer, error) {
	key, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	return &Signer{key: key}, nil
}

// Address returns the signer's Ethereum address, the one the verifying
// contract recovers from a valid signature.
func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// Sign produces the signature over the canonical encoding of q bound to
// verifyingContract. The packed fields are keccak hashed, wrapped in the
// personal-message envelope, hashed again, and signed. Only coverable
// quotes are signable.
func (s *Signer) Sign(q quote.Quote, verifyingContract common.Address) (Signature, error) {
	if !q.Coverable() {
		return Signature{}, ErrUncoverable
	}

	encoded, err := EncodeQuote(q, verifyingContract)
	if err != nil {
		return Signature{}, fmt.Errorf("encode quote: %w", err)
	}

	digest := crypto.Keccak256(encoded)
	sigHash := crypto.Keccak256(personalPrefix, digest)

	sig, err := crypto.Sign(sigHash, s.key)
	if err != nil {
		return Signature{}, fmt.Errorf("sign quote: %w", err)
	}

	return Signature{
		V: hexutil.EncodeUint64(27 + uint64(sig[64])),
		R: hexutil.Encode(sig[:32]),
		S: hexutil.Encode(sig[32:64]),
	}, nil
}
