package sdk

import (
	"context"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

// NodeRepository reads node-level information, including the generation hash
// identifying the ledger instance the node serves.
type NodeRepository interface {
	GetNodeInfo(ctx context.Context) (*model.NodeInfo, error)
}

type nodeInfoDTO struct {
	Version        uint32 `json:"version"`
	PublicKey      string `json:"publicKey"`
	GenerationHash string `json:"generationHash"`
	Roles          uint32 `json:"roles"`
	Host           string `json:"host"`
	FriendlyName   string `json:"friendlyName"`
	NetworkType    uint8  `json:"networkType"`
}

type httpNodeRepository struct {
	exec *executor
}

var _ NodeRepository = (*httpNodeRepository)(nil)

func (r *httpNodeRepository) GetNodeInfo(ctx context.Context) (*model.NodeInfo, error) {
	var dto nodeInfoDTO
	if err := r.exec.get(ctx, "getNodeInfo", "/node/info", nil, &dto); err != nil {
		return nil, err
	}

	network, err := model.NetworkTypeFromValue(dto.NetworkType)
	if err != nil {
		return nil, err
	}
	return &model.NodeInfo{
		Version:        dto.Version,
		PublicKey:      dto.PublicKey,
		GenerationHash: dto.GenerationHash,
		Roles:          dto.Roles,
		Host:           dto.Host,
		FriendlyName:   dto.FriendlyName,
		Network:        network,
	}, nil
}
