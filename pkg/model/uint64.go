package model

import (
	"fmt"
	"strconv"
)

// Unsigned64 is the canonical representation of a 64-bit non-negative integer
// as two 32-bit words, matching the node's wire encoding. The zero value
// represents the number zero.
//
// Values round-trip exactly through their decimal wire form:
// Unsigned64FromString(s).String() == s for every valid s.
type Unsigned64 struct {
	Lower  uint32
	Higher uint32
}

// NewUnsigned64 builds an Unsigned64 from a native uint64.
func NewUnsigned64(v uint64) Unsigned64 {
	return Unsigned64{
		Lower:  uint32(v & 0xFFFFFFFF),
		Higher: uint32(v >> 32),
	}
}

// Unsigned64FromString parses the canonical decimal wire encoding. The input
// must be a plain base-10 integer within 64-bit range: no sign, no whitespace,
// no leading zeros (except "0" itself). Anything else fails with
// ErrMalformedValue.
func Unsigned64FromString(s string) (Unsigned64, error) {
	if s == "" {
		return Unsigned64{}, fmt.Errorf("%w: empty decimal string", ErrMalformedValue)
	}
	if len(s) > 1 && s[0] == '0' {
		return Unsigned64{}, fmt.Errorf("%w: leading zeros in %q", ErrMalformedValue, s)
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Unsigned64{}, fmt.Errorf("%w: invalid unsigned 64-bit decimal %q", ErrMalformedValue, s)
	}
	return NewUnsigned64(v), nil
}

// Unsigned64FromHex parses the 16-character hexadecimal form used for
// identifiers. Case-insensitive; any other length or character fails with
// ErrMalformedValue.
func Unsigned64FromHex(s string) (Unsigned64, error) {
	if len(s) != 16 {
		return Unsigned64{}, fmt.Errorf("%w: hex id must be 16 characters, got %d", ErrMalformedValue, len(s))
	}

	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return Unsigned64{}, fmt.Errorf("%w: invalid hex id %q", ErrMalformedValue, s)
	}
	return NewUnsigned64(v), nil
}

// Uint64 returns the native 64-bit value.
func (u Unsigned64) Uint64() uint64 {
	return uint64(u.Higher)<<32 | uint64(u.Lower)
}

// String returns the canonical decimal encoding, the exact inverse of
// Unsigned64FromString.
func (u Unsigned64) String() string {
	return strconv.FormatUint(u.Uint64(), 10)
}

// Hex returns the upper-case 16-character hexadecimal form.
func (u Unsigned64) Hex() string {
	return fmt.Sprintf("%016X", u.Uint64())
}

// Equal reports structural equality of the two-word representation.
func (u Unsigned64) Equal(o Unsigned64) bool {
	return u == o
}

// MarshalJSON emits the decimal wire encoding as a JSON string.
func (u Unsigned64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(u.String())), nil
}

// UnmarshalJSON parses the decimal wire encoding from a JSON string.
func (u *Unsigned64) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: expected decimal string, got %s", ErrMalformedValue, data)
	}

	v, err := Unsigned64FromString(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
