package sdk

import (
	"context"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

// ChainRepository reads the node's view of the chain tip.
type ChainRepository interface {
	GetChainInfo(ctx context.Context) (*model.ChainInfo, error)
}

type chainInfoDTO struct {
	Height          model.Unsigned64 `json:"height"`
	FinalizedHeight model.Unsigned64 `json:"finalizedHeight"`
	Score           struct {
		Low  model.Unsigned64 `json:"low"`
		High model.Unsigned64 `json:"high"`
	} `json:"score"`
}

type httpChainRepository struct {
	exec *executor
}

var _ ChainRepository = (*httpChainRepository)(nil)

func (r *httpChainRepository) GetChainInfo(ctx context.Context) (*model.ChainInfo, error) {
	var dto chainInfoDTO
	if err := r.exec.get(ctx, "getChainInfo", "/chain/info", nil, &dto); err != nil {
		return nil, err
	}
	return &model.ChainInfo{
		Height:          dto.Height,
		FinalizedHeight: dto.FinalizedHeight,
		ScoreLow:        dto.Score.Low,
		ScoreHigh:       dto.Score.High,
	}, nil
}
