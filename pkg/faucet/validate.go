package faucet

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// AddressLength is the base58 length of an SS58 account address on the
// target chain (1 network byte + 32-byte public key + 2-byte checksum).
const AddressLength = 48

const ss58DecodedLength = 35

// ss58Preimage is the constant prefixed to the checksum input per the
// SS58 address format.
var ss58Preimage = []byte("SS58PRE")

// ValidateAddress checks a wallet address against the chain's SS58
// encoding: length, base58 alphabet and blake2b checksum. Both claim
// kinds run through this single check so the two admission paths cannot
// drift apart.
func ValidateAddress(address string) error {
	if len(address) != AddressLength {
		return &ValidationError{Reason: "invalid address format"}
	}

	raw, err := base58.Decode(address)
	if err != nil {
		return &ValidationError{Reason: "invalid address encoding"}
	}
	if len(raw) != ss58DecodedLength {
		return &ValidationError{Reason: "invalid address payload"}
	}

	if !bytes.Equal(ss58Checksum(raw[:ss58DecodedLength-2]), raw[ss58DecodedLength-2:]) {
		return &ValidationError{Reason: "invalid address checksum"}
	}

	return nil
}

// ss58Checksum computes the two checksum bytes for an SS58 payload.
func ss58Checksum(data []byte) []byte {
	h := blake2b.Sum512(append(append([]byte{}, ss58Preimage...), data...))
	return h[:2]
}
