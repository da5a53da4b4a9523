package sdk

import (
	"context"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

// TokenRepository reads registered tokens.
type TokenRepository interface {
	GetToken(ctx context.Context, id model.TokenID) (*model.TokenInfo, error)

	// SearchTokens returns one page of tokens, optionally filtered by owner.
	// A nil query uses the fixed defaults.
	SearchTokens(ctx context.Context, owner *model.Address, q *PageQuery) (*Page[model.TokenInfo], error)
}

type tokenDTO struct {
	ID           string           `json:"id"`
	Supply       model.Unsigned64 `json:"supply"`
	StartHeight  model.Unsigned64 `json:"startHeight"`
	OwnerAddress string           `json:"ownerAddress"`
	Divisibility uint8            `json:"divisibility"`
	Flags        uint8            `json:"flags"`
}

type tokenMetaDTO struct {
	ID string `json:"id"`
}

type tokenInfoDTO struct {
	Meta  tokenMetaDTO `json:"meta"`
	Token tokenDTO     `json:"token"`
}

type tokenPageDTO struct {
	Data []tokenInfoDTO `json:"data"`
}

func (dto tokenDTO) toModel() (*model.TokenInfo, error) {
	id, err := model.TokenIDFromHex(dto.ID)
	if err != nil {
		return nil, err
	}

	owner, err := model.AddressFromEncoded(dto.OwnerAddress)
	if err != nil {
		return nil, err
	}

	return &model.TokenInfo{
		ID:           id,
		Supply:       dto.Supply,
		StartHeight:  dto.StartHeight,
		Owner:        owner,
		Divisibility: dto.Divisibility,
		Flags:        model.TokenFlags(dto.Flags),
	}, nil
}

type httpTokenRepository struct {
	exec *executor
}

var _ TokenRepository = (*httpTokenRepository)(nil)

func (r *httpTokenRepository) GetToken(ctx context.Context, id model.TokenID) (*model.TokenInfo, error) {
	var dto tokenInfoDTO
	if err := r.exec.get(ctx, "getToken", "/tokens/"+id.Hex(), nil, &dto); err != nil {
		return nil, err
	}
	return dto.Token.toModel()
}

func (r *httpTokenRepository) SearchTokens(ctx context.Context, owner *model.Address, q *PageQuery) (*Page[model.TokenInfo], error) {
	if err := validatePageQuery(q); err != nil {
		return nil, err
	}

	query := q.values()
	if owner != nil {
		query.Set("ownerAddress", owner.Raw())
	}

	var dto tokenPageDTO
	if err := r.exec.get(ctx, "searchTokens", "/tokens", query, &dto); err != nil {
		return nil, err
	}

	page := &Page[model.TokenInfo]{Items: make([]model.TokenInfo, 0, len(dto.Data))}
	for _, item := range dto.Data {
		info, err := item.Token.toModel()
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, *info)
		page.LastID = item.Meta.ID
	}
	return page, nil
}
