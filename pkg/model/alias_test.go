package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

func aliasType(t model.AliasType) *uint8 {
	v := uint8(t)
	return &v
}

func TestAliasFromDTO_MissingDiscriminatorIsNone(t *testing.T) {
	t.Parallel()

	alias, err := model.AliasFromDTO(model.AliasDTO{})
	require.NoError(t, err)
	assert.True(t, alias.IsNone())
}

func TestAliasFromDTO_NoneIgnoresStrayPayload(t *testing.T) {
	t.Parallel()

	// A present-but-irrelevant payload field must not override the tag.
	alias, err := model.AliasFromDTO(model.AliasDTO{
		Type:    aliasType(model.AliasTypeNone),
		TokenID: "85BBEA6CC462B244",
		Address: testAddress(t).Encoded(),
	})
	require.NoError(t, err)
	assert.True(t, alias.IsNone())
}

func TestAliasFromDTO_TokenAlias(t *testing.T) {
	t.Parallel()

	alias, err := model.AliasFromDTO(model.AliasDTO{
		Type:    aliasType(model.AliasTypeToken),
		TokenID: "85BBEA6CC462B244",
	})
	require.NoError(t, err)

	assert.Equal(t, model.AliasTypeToken, alias.Type)
	assert.Equal(t, "85BBEA6CC462B244", alias.TokenID.Hex())
}

func TestAliasFromDTO_TokenAliasWithoutPayloadFails(t *testing.T) {
	t.Parallel()

	_, err := model.AliasFromDTO(model.AliasDTO{
		Type:    aliasType(model.AliasTypeToken),
		Address: testAddress(t).Encoded(), // stray field of the wrong variant
	})
	assert.ErrorIs(t, err, model.ErrMissingAliasPayload)
}

func TestAliasFromDTO_AddressAlias(t *testing.T) {
	t.Parallel()

	addr := testAddress(t)
	alias, err := model.AliasFromDTO(model.AliasDTO{
		Type:    aliasType(model.AliasTypeAddress),
		Address: addr.Encoded(),
	})
	require.NoError(t, err)

	assert.Equal(t, model.AliasTypeAddress, alias.Type)
	assert.True(t, alias.Address.Equal(addr))
}

func TestAliasFromDTO_AddressAliasWithoutPayloadFails(t *testing.T) {
	t.Parallel()

	_, err := model.AliasFromDTO(model.AliasDTO{
		Type: aliasType(model.AliasTypeAddress),
	})
	assert.ErrorIs(t, err, model.ErrMissingAliasPayload)
}

func TestAliasFromDTO_UnknownDiscriminatorFails(t *testing.T) {
	t.Parallel()

	unknown := uint8(9)
	_, err := model.AliasFromDTO(model.AliasDTO{Type: &unknown})
	assert.ErrorIs(t, err, model.ErrMalformedValue)
}
