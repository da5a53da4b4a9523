package model

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// TokenID is the canonical 64-bit identifier of a token. Token ids never set
// the namespace flag bit, keeping the two id spaces disjoint.
type TokenID Unsigned64

// TokenIDFromHex decodes a token id from its 16-character hex wire form.
func TokenIDFromHex(s string) (TokenID, error) {
	v, err := Unsigned64FromHex(s)
	if err != nil {
		return TokenID{}, err
	}
	return TokenID(v), nil
}

// TokenIDFromNonce deterministically derives the id a token receives when
// registered with the given nonce by the given owner.
func TokenIDFromNonce(nonce uint32, owner Address) TokenID {
	var seed [4]byte
	binary.LittleEndian.PutUint32(seed[:], nonce)

	h := sha3.Sum256(append(seed[:], owner.bytes[:]...))
	return TokenID(Unsigned64{
		Lower:  binary.LittleEndian.Uint32(h[0:4]),
		Higher: binary.LittleEndian.Uint32(h[4:8]) &^ namespaceIDFlag,
	})
}

// Hex returns the 16-character wire form.
func (id TokenID) Hex() string { return Unsigned64(id).Hex() }

func (id TokenID) String() string { return id.Hex() }

// Equal reports canonical-form equality.
func (id TokenID) Equal(o TokenID) bool { return id == o }

// TokenFlags is the bitmask of capabilities a token was registered with.
type TokenFlags uint8

const (
	TokenFlagSupplyMutable TokenFlags = 1 << iota
	TokenFlagTransferable
	TokenFlagRestrictable
)

// Has reports whether all bits in flag are set.
func (f TokenFlags) Has(flag TokenFlags) bool {
	return f&flag == flag
}

// TokenInfo is the decoded state of one registered token.
type TokenInfo struct {
	ID           TokenID
	Supply       Unsigned64
	StartHeight  Unsigned64
	Owner        Address
	Divisibility uint8
	Flags        TokenFlags
}

// TokenBalance is an amount of one token held by an account.
type TokenBalance struct {
	ID     TokenID
	Amount Unsigned64
}
