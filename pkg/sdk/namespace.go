package sdk

import (
	"context"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

// NamespaceRepository reads registered namespaces and their aliases.
type NamespaceRepository interface {
	GetNamespace(ctx context.Context, id model.NamespaceID) (*model.NamespaceInfo, error)

	// GetNamespacesFromAccount returns one page of the namespaces owned by an
	// account. A nil query uses the fixed defaults.
	GetNamespacesFromAccount(ctx context.Context, owner model.Address, q *PageQuery) (*Page[model.NamespaceInfo], error)

	// GetNamespaceNames resolves ids back to their registered names.
	GetNamespaceNames(ctx context.Context, ids []model.NamespaceID) ([]model.NamespaceName, error)
}

type namespaceDTO struct {
	ID               string           `json:"id"`
	RegistrationType uint8            `json:"registrationType"`
	Depth            int              `json:"depth"`
	ParentID         string           `json:"parentId,omitempty"`
	OwnerAddress     string           `json:"ownerAddress"`
	StartHeight      model.Unsigned64 `json:"startHeight"`
	EndHeight        model.Unsigned64 `json:"endHeight"`
	Alias            model.AliasDTO   `json:"alias"`
}

type namespaceMetaDTO struct {
	ID string `json:"id"`
}

type namespaceInfoDTO struct {
	Meta      namespaceMetaDTO `json:"meta"`
	Namespace namespaceDTO     `json:"namespace"`
}

type namespacePageDTO struct {
	Data []namespaceInfoDTO `json:"data"`
}

type namespaceNameDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (dto namespaceDTO) toModel() (*model.NamespaceInfo, error) {
	id, err := model.NamespaceIDFromHex(dto.ID)
	if err != nil {
		return nil, err
	}

	var parentID model.NamespaceID
	if dto.ParentID != "" {
		parentID, err = model.NamespaceIDFromHex(dto.ParentID)
		if err != nil {
			return nil, err
		}
	}

	owner, err := model.AddressFromEncoded(dto.OwnerAddress)
	if err != nil {
		return nil, err
	}

	alias, err := model.AliasFromDTO(dto.Alias)
	if err != nil {
		return nil, err
	}

	return &model.NamespaceInfo{
		ID:           id,
		Registration: model.NamespaceRegistrationType(dto.RegistrationType),
		Depth:        dto.Depth,
		ParentID:     parentID,
		Owner:        owner,
		StartHeight:  dto.StartHeight,
		EndHeight:    dto.EndHeight,
		Alias:        alias,
	}, nil
}

type httpNamespaceRepository struct {
	exec *executor
}

var _ NamespaceRepository = (*httpNamespaceRepository)(nil)

func (r *httpNamespaceRepository) GetNamespace(ctx context.Context, id model.NamespaceID) (*model.NamespaceInfo, error) {
	var dto namespaceInfoDTO
	if err := r.exec.get(ctx, "getNamespace", "/namespaces/"+id.Hex(), nil, &dto); err != nil {
		return nil, err
	}
	return dto.Namespace.toModel()
}

func (r *httpNamespaceRepository) GetNamespacesFromAccount(ctx context.Context, owner model.Address, q *PageQuery) (*Page[model.NamespaceInfo], error) {
	if err := validatePageQuery(q); err != nil {
		return nil, err
	}

	query := q.values()
	query.Set("ownerAddress", owner.Raw())

	var dto namespacePageDTO
	if err := r.exec.get(ctx, "searchNamespaces", "/namespaces", query, &dto); err != nil {
		return nil, err
	}

	page := &Page[model.NamespaceInfo]{Items: make([]model.NamespaceInfo, 0, len(dto.Data))}
	for _, item := range dto.Data {
		info, err := item.Namespace.toModel()
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, *info)
		page.LastID = item.Meta.ID
	}
	return page, nil
}

func (r *httpNamespaceRepository) GetNamespaceNames(ctx context.Context, ids []model.NamespaceID) ([]model.NamespaceName, error) {
	hexIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		hexIDs = append(hexIDs, id.Hex())
	}

	body := map[string][]string{"namespaceIds": hexIDs}
	var dtos []namespaceNameDTO
	if err := r.exec.post(ctx, "getNamespaceNames", "/namespaces/names", body, &dtos); err != nil {
		return nil, err
	}

	names := make([]model.NamespaceName, 0, len(dtos))
	for _, dto := range dtos {
		id, err := model.NamespaceIDFromHex(dto.ID)
		if err != nil {
			return nil, err
		}
		names = append(names, model.NamespaceName{ID: id, Name: dto.Name})
	}
	return names, nil
}
