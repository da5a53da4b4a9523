package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

func TestUnsigned64_DecimalRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []string{
		"0",
		"1",
		"10",
		"4294967295",
		"4294967296",
		"8999999998000000",
		"18446744073709551615",
	}

	for _, s := range cases {
		v, err := model.Unsigned64FromString(s)
		require.NoError(t, err, "decode %q", s)
		assert.Equal(t, s, v.String(), "round trip %q", s)
	}
}

func TestUnsigned64_WordSplit(t *testing.T) {
	t.Parallel()

	v := model.NewUnsigned64(0x0000000100000002)
	assert.Equal(t, uint32(2), v.Lower)
	assert.Equal(t, uint32(1), v.Higher)
	assert.Equal(t, uint64(0x0000000100000002), v.Uint64())
}

func TestUnsigned64_FromStringRejectsMalformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"007",
		"-5",
		"+5",
		" 5",
		"12a",
		"18446744073709551616", // 2^64
	}

	for _, s := range cases {
		_, err := model.Unsigned64FromString(s)
		require.Error(t, err, "input %q", s)
		assert.ErrorIs(t, err, model.ErrMalformedValue, "input %q", s)
	}
}

func TestUnsigned64_HexRoundTrip(t *testing.T) {
	t.Parallel()

	v, err := model.Unsigned64FromHex("85BBEA6CC462B244")
	require.NoError(t, err)
	assert.Equal(t, "85BBEA6CC462B244", v.Hex())

	lower, err := model.Unsigned64FromHex("85bbea6cc462b244")
	require.NoError(t, err)
	assert.True(t, v.Equal(lower))

	_, err = model.Unsigned64FromHex("85BBEA6C")
	assert.ErrorIs(t, err, model.ErrMalformedValue)

	_, err = model.Unsigned64FromHex("85BBEA6CC462B24G")
	assert.ErrorIs(t, err, model.ErrMalformedValue)
}

func TestUnsigned64_JSON(t *testing.T) {
	t.Parallel()

	var v model.Unsigned64
	require.NoError(t, json.Unmarshal([]byte(`"8999999998000000"`), &v))
	assert.Equal(t, uint64(8999999998000000), v.Uint64())

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"8999999998000000"`, string(data))

	err = json.Unmarshal([]byte(`12`), &v)
	assert.ErrorIs(t, err, model.ErrMalformedValue)
}
