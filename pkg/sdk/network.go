package sdk

import (
	"context"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

// NetworkRepository reads the network identity endpoint.
type NetworkRepository interface {
	// GetNetworkType returns the network type code the node is serving.
	GetNetworkType(ctx context.Context) (model.NetworkType, error)

	// GetNetworkName returns the node's human-readable network name.
	GetNetworkName(ctx context.Context) (string, error)
}

type networkDTO struct {
	Type uint8  `json:"type"`
	Name string `json:"name"`
}

type httpNetworkRepository struct {
	exec *executor
}

var _ NetworkRepository = (*httpNetworkRepository)(nil)

func (r *httpNetworkRepository) GetNetworkType(ctx context.Context) (model.NetworkType, error) {
	var dto networkDTO
	if err := r.exec.get(ctx, "getNetwork", "/network", nil, &dto); err != nil {
		return 0, err
	}
	return model.NetworkTypeFromValue(dto.Type)
}

func (r *httpNetworkRepository) GetNetworkName(ctx context.Context) (string, error) {
	var dto networkDTO
	if err := r.exec.get(ctx, "getNetwork", "/network", nil, &dto); err != nil {
		return "", err
	}
	return dto.Name, nil
}
