package sdk

import (
	"context"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

// BlockRepository reads confirmed block headers.
type BlockRepository interface {
	GetBlockByHeight(ctx context.Context, height model.Unsigned64) (*model.BlockInfo, error)

	// SearchBlocks returns one page of block headers ordered by database id.
	// A nil query uses the fixed defaults.
	SearchBlocks(ctx context.Context, q *PageQuery) (*Page[model.BlockInfo], error)
}

type blockDTO struct {
	Height            model.Unsigned64 `json:"height"`
	Timestamp         model.Unsigned64 `json:"timestamp"`
	SignerPublicKey   string           `json:"signerPublicKey"`
	NetworkType       uint8            `json:"networkType"`
	PreviousBlockHash string           `json:"previousBlockHash"`
	TransactionsCount int              `json:"transactionsCount"`
	FeeMultiplier     uint32           `json:"feeMultiplier"`
}

type blockMetaDTO struct {
	ID   string `json:"id"`
	Hash string `json:"hash"`
}

type blockInfoDTO struct {
	Meta  blockMetaDTO `json:"meta"`
	Block blockDTO     `json:"block"`
}

type blockPageDTO struct {
	Data []blockInfoDTO `json:"data"`
}

func (dto blockInfoDTO) toModel() (*model.BlockInfo, error) {
	network, err := model.NetworkTypeFromValue(dto.Block.NetworkType)
	if err != nil {
		return nil, err
	}
	return &model.BlockInfo{
		Hash:              dto.Meta.Hash,
		Height:            dto.Block.Height,
		Timestamp:         dto.Block.Timestamp,
		SignerPublicKey:   dto.Block.SignerPublicKey,
		Network:           network,
		PreviousBlockHash: dto.Block.PreviousBlockHash,
		TransactionsCount: dto.Block.TransactionsCount,
		FeeMultiplier:     dto.Block.FeeMultiplier,
	}, nil
}

type httpBlockRepository struct {
	exec *executor
}

var _ BlockRepository = (*httpBlockRepository)(nil)

func (r *httpBlockRepository) GetBlockByHeight(ctx context.Context, height model.Unsigned64) (*model.BlockInfo, error) {
	var dto blockInfoDTO
	if err := r.exec.get(ctx, "getBlockByHeight", "/blocks/"+height.String(), nil, &dto); err != nil {
		return nil, err
	}
	return dto.toModel()
}

func (r *httpBlockRepository) SearchBlocks(ctx context.Context, q *PageQuery) (*Page[model.BlockInfo], error) {
	if err := validatePageQuery(q); err != nil {
		return nil, err
	}

	var dto blockPageDTO
	if err := r.exec.get(ctx, "searchBlocks", "/blocks", q.values(), &dto); err != nil {
		return nil, err
	}

	page := &Page[model.BlockInfo]{Items: make([]model.BlockInfo, 0, len(dto.Data))}
	for _, item := range dto.Data {
		block, err := item.toModel()
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, *block)
		page.LastID = item.Meta.ID
	}
	return page, nil
}
