package model

import (
	"bytes"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	addressSize     = 25
	checksumSize    = 4
	rawAddressLen   = 40 // base32 of 25 bytes
	encodedAddrLen  = 50 // hex of 25 bytes
	publicKeyHexLen = 64
)

var addressEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Address is the canonical account address: one network byte, a 20-byte
// account hash and a 4-byte checksum. Both wire forms — the human-facing
// base32 string and the hex-encoded form — normalize to the same value, so
// addresses are comparable regardless of which form they were decoded from.
type Address struct {
	bytes [addressSize]byte
}

// AddressFromRaw decodes the human-facing base32 form. Dash separators are
// ignored and case is normalized, so "TB6Q3F-..." and "tb6q3f..." decode to
// the same address. The checksum is verified.
func AddressFromRaw(raw string) (Address, error) {
	plain := strings.ToUpper(strings.ReplaceAll(raw, "-", ""))
	if len(plain) != rawAddressLen {
		return Address{}, fmt.Errorf("%w: raw address must be %d characters, got %d", ErrMalformedValue, rawAddressLen, len(plain))
	}

	decoded, err := addressEncoding.DecodeString(plain)
	if err != nil {
		return Address{}, fmt.Errorf("%w: invalid base32 address %q", ErrMalformedValue, raw)
	}
	return addressFromBytes(decoded)
}

// AddressFromEncoded decodes the 50-character hex wire form. The checksum is
// verified.
func AddressFromEncoded(encoded string) (Address, error) {
	if len(encoded) != encodedAddrLen {
		return Address{}, fmt.Errorf("%w: encoded address must be %d characters, got %d", ErrMalformedValue, encodedAddrLen, len(encoded))
	}

	decoded, err := hex.DecodeString(encoded)
	if err != nil {
		return Address{}, fmt.Errorf("%w: invalid hex address %q", ErrMalformedValue, encoded)
	}
	return addressFromBytes(decoded)
}

// AddressFromPublicKey derives the address owned by a public key on the given
// network: network byte, then the first 20 bytes of sha3-256 over the key.
func AddressFromPublicKey(publicKeyHex string, network NetworkType) (Address, error) {
	if len(publicKeyHex) != publicKeyHexLen {
		return Address{}, fmt.Errorf("%w: public key must be %d hex characters, got %d", ErrMalformedValue, publicKeyHexLen, len(publicKeyHex))
	}
	pub, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return Address{}, fmt.Errorf("%w: invalid public key %q", ErrMalformedValue, publicKeyHex)
	}

	keyHash := sha3.Sum256(pub)

	var a Address
	a.bytes[0] = byte(network)
	copy(a.bytes[1:21], keyHash[:20])
	copy(a.bytes[21:], checksum(a.bytes[:21]))
	return a, nil
}

func addressFromBytes(b []byte) (Address, error) {
	if len(b) != addressSize {
		return Address{}, fmt.Errorf("%w: address must be %d bytes, got %d", ErrMalformedValue, addressSize, len(b))
	}

	var a Address
	copy(a.bytes[:], b)

	if !bytes.Equal(checksum(a.bytes[:21]), a.bytes[21:]) {
		return Address{}, fmt.Errorf("%w: address checksum mismatch", ErrMalformedValue)
	}
	return a, nil
}

func checksum(payload []byte) []byte {
	h := sha3.Sum256(payload)
	return h[:checksumSize]
}

// Raw returns the plain base32 form without separators.
func (a Address) Raw() string {
	return addressEncoding.EncodeToString(a.bytes[:])
}

// Pretty returns the base32 form with a dash every six characters, the way
// addresses are usually displayed to people.
func (a Address) Pretty() string {
	raw := a.Raw()
	var sb strings.Builder
	for i := 0; i < len(raw); i += 6 {
		if i > 0 {
			sb.WriteByte('-')
		}
		end := i + 6
		if end > len(raw) {
			end = len(raw)
		}
		sb.WriteString(raw[i:end])
	}
	return sb.String()
}

// Encoded returns the upper-case hex wire form.
func (a Address) Encoded() string {
	return strings.ToUpper(hex.EncodeToString(a.bytes[:]))
}

// Network returns the network the address belongs to.
func (a Address) Network() NetworkType {
	return NetworkType(a.bytes[0])
}

// Equal reports whether both addresses hold the same canonical bytes.
func (a Address) Equal(b Address) bool {
	return a == b
}

func (a Address) String() string {
	return a.Pretty()
}
