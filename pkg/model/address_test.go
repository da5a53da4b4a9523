package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

const testPublicKey = "C2F93346E27CE6AD1A9F8F5E3066F8326593A406BDF357ACB041E2F9AB402EFE"

func testAddress(t *testing.T) model.Address {
	t.Helper()

	addr, err := model.AddressFromPublicKey(testPublicKey, model.NetworkTestnet)
	require.NoError(t, err)
	return addr
}

func TestAddress_RawEncodedNormalization(t *testing.T) {
	t.Parallel()

	addr := testAddress(t)

	fromRaw, err := model.AddressFromRaw(addr.Raw())
	require.NoError(t, err)

	fromEncoded, err := model.AddressFromEncoded(addr.Encoded())
	require.NoError(t, err)

	assert.True(t, fromRaw.Equal(fromEncoded))
	assert.Equal(t, fromRaw.Encoded(), fromEncoded.Encoded())

	// decodeEncoded(toEncoded(decodeRaw(a))) == decodeRaw(a)
	again, err := model.AddressFromEncoded(fromRaw.Encoded())
	require.NoError(t, err)
	assert.True(t, again.Equal(fromRaw))
}

func TestAddress_RawAcceptsPrettyAndLowercase(t *testing.T) {
	t.Parallel()

	addr := testAddress(t)

	fromPretty, err := model.AddressFromRaw(addr.Pretty())
	require.NoError(t, err)
	assert.True(t, fromPretty.Equal(addr))

	fromLower, err := model.AddressFromRaw(strings.ToLower(addr.Raw()))
	require.NoError(t, err)
	assert.True(t, fromLower.Equal(addr))
}

func TestAddress_Network(t *testing.T) {
	t.Parallel()

	addr := testAddress(t)
	assert.Equal(t, model.NetworkTestnet, addr.Network())
}

func TestAddress_RejectsMalformed(t *testing.T) {
	t.Parallel()

	_, err := model.AddressFromRaw("TOO-SHORT")
	assert.ErrorIs(t, err, model.ErrMalformedValue)

	_, err = model.AddressFromEncoded("ZZ")
	assert.ErrorIs(t, err, model.ErrMalformedValue)

	// Flip one checksum character; the canonical value must be rejected.
	encoded := testAddress(t).Encoded()
	last := encoded[len(encoded)-1]
	flipped := "0"
	if last == '0' {
		flipped = "1"
	}
	_, err = model.AddressFromEncoded(encoded[:len(encoded)-1] + flipped)
	assert.ErrorIs(t, err, model.ErrMalformedValue)
}

func TestAddressFromPublicKey_Deterministic(t *testing.T) {
	t.Parallel()

	a1, err := model.AddressFromPublicKey(testPublicKey, model.NetworkMainnet)
	require.NoError(t, err)
	a2, err := model.AddressFromPublicKey(testPublicKey, model.NetworkMainnet)
	require.NoError(t, err)
	assert.True(t, a1.Equal(a2))

	onTestnet, err := model.AddressFromPublicKey(testPublicKey, model.NetworkTestnet)
	require.NoError(t, err)
	assert.False(t, a1.Equal(onTestnet))
}
