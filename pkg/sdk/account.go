package sdk

import (
	"context"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

// AccountRepository reads account state from the node.
type AccountRepository interface {
	// GetAccountInfo returns the state of one account.
	GetAccountInfo(ctx context.Context, addr model.Address) (*model.AccountInfo, error)

	// GetAccountsInfo returns the state of several accounts in one call.
	// Unknown addresses are simply absent from the result.
	GetAccountsInfo(ctx context.Context, addrs []model.Address) ([]*model.AccountInfo, error)
}

type tokenBalanceDTO struct {
	ID     string           `json:"id"`
	Amount model.Unsigned64 `json:"amount"`
}

type accountDTO struct {
	Address         string           `json:"address"`
	AddressHeight   model.Unsigned64 `json:"addressHeight"`
	PublicKey       string           `json:"publicKey"`
	PublicKeyHeight model.Unsigned64 `json:"publicKeyHeight"`
	Importance      model.Unsigned64 `json:"importance"`
	Balances        []tokenBalanceDTO `json:"balances"`
}

type accountInfoDTO struct {
	Account accountDTO `json:"account"`
}

func (dto accountDTO) toModel() (*model.AccountInfo, error) {
	addr, err := model.AddressFromEncoded(dto.Address)
	if err != nil {
		return nil, err
	}

	balances := make([]model.TokenBalance, 0, len(dto.Balances))
	for _, b := range dto.Balances {
		id, err := model.TokenIDFromHex(b.ID)
		if err != nil {
			return nil, err
		}
		balances = append(balances, model.TokenBalance{ID: id, Amount: b.Amount})
	}

	return &model.AccountInfo{
		Address:         addr,
		AddressHeight:   dto.AddressHeight,
		PublicKey:       dto.PublicKey,
		PublicKeyHeight: dto.PublicKeyHeight,
		Importance:      dto.Importance,
		Balances:        balances,
	}, nil
}

type httpAccountRepository struct {
	exec *executor
}

var _ AccountRepository = (*httpAccountRepository)(nil)

func (r *httpAccountRepository) GetAccountInfo(ctx context.Context, addr model.Address) (*model.AccountInfo, error) {
	var dto accountInfoDTO
	if err := r.exec.get(ctx, "getAccountInfo", "/accounts/"+addr.Raw(), nil, &dto); err != nil {
		return nil, err
	}
	return dto.Account.toModel()
}

func (r *httpAccountRepository) GetAccountsInfo(ctx context.Context, addrs []model.Address) ([]*model.AccountInfo, error) {
	raws := make([]string, 0, len(addrs))
	for _, a := range addrs {
		raws = append(raws, a.Raw())
	}

	body := map[string][]string{"addresses": raws}
	var dtos []accountInfoDTO
	if err := r.exec.post(ctx, "getAccountsInfo", "/accounts", body, &dtos); err != nil {
		return nil, err
	}

	infos := make([]*model.AccountInfo, 0, len(dtos))
	for _, dto := range dtos {
		info, err := dto.Account.toModel()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
