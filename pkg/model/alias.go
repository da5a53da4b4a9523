package model

import "fmt"

// AliasType is the wire discriminator for a namespace alias.
type AliasType uint8

const (
	AliasTypeNone    AliasType = 0
	AliasTypeToken   AliasType = 1
	AliasTypeAddress AliasType = 2
)

// Alias is the binding attached to a namespace: nothing, a token id, or an
// account address. Exactly one variant holds at a time, selected by Type.
type Alias struct {
	Type    AliasType
	TokenID TokenID // set iff Type == AliasTypeToken
	Address Address // set iff Type == AliasTypeAddress
}

// NoneAlias returns the empty binding.
func NoneAlias() Alias {
	return Alias{Type: AliasTypeNone}
}

// NewTokenAlias returns an alias resolving to a token id.
func NewTokenAlias(id TokenID) Alias {
	return Alias{Type: AliasTypeToken, TokenID: id}
}

// NewAddressAlias returns an alias resolving to an account address.
func NewAddressAlias(addr Address) Alias {
	return Alias{Type: AliasTypeAddress, Address: addr}
}

// IsNone reports whether the alias binds to nothing.
func (a Alias) IsNone() bool {
	return a.Type == AliasTypeNone
}

// AliasDTO is the wire shape of an alias: a discriminator plus
// discriminator-dependent optional payload fields.
type AliasDTO struct {
	Type    *uint8 `json:"type"`
	TokenID string `json:"tokenId,omitempty"`
	Address string `json:"address,omitempty"`
}

// AliasFromDTO decodes a wire alias by dispatching on the discriminator
// alone. Payload fields that are present but irrelevant to the declared
// variant are ignored; a declared variant whose payload field is absent fails
// with ErrMissingAliasPayload. Only a missing discriminator falls back to the
// none variant.
func AliasFromDTO(dto AliasDTO) (Alias, error) {
	if dto.Type == nil {
		return NoneAlias(), nil
	}

	switch AliasType(*dto.Type) {
	case AliasTypeNone:
		return NoneAlias(), nil

	case AliasTypeToken:
		if dto.TokenID == "" {
			return Alias{}, fmt.Errorf("%w: token alias without tokenId", ErrMissingAliasPayload)
		}
		id, err := TokenIDFromHex(dto.TokenID)
		if err != nil {
			return Alias{}, err
		}
		return NewTokenAlias(id), nil

	case AliasTypeAddress:
		if dto.Address == "" {
			return Alias{}, fmt.Errorf("%w: address alias without address", ErrMissingAliasPayload)
		}
		addr, err := AddressFromEncoded(dto.Address)
		if err != nil {
			return Alias{}, err
		}
		return NewAddressAlias(addr), nil

	default:
		return Alias{}, fmt.Errorf("%w: unknown alias type %d", ErrMalformedValue, *dto.Type)
	}
}
