package listener

import (
	"encoding/json"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

// blockFrameDTO is the push-channel shape of a block announcement. It mirrors
// the REST block resource.
type blockFrameDTO struct {
	Meta struct {
		Hash string `json:"hash"`
	} `json:"meta"`
	Block struct {
		Height            model.Unsigned64 `json:"height"`
		Timestamp         model.Unsigned64 `json:"timestamp"`
		SignerPublicKey   string           `json:"signerPublicKey"`
		NetworkType       uint8            `json:"networkType"`
		PreviousBlockHash string           `json:"previousBlockHash"`
		TransactionsCount int              `json:"transactionsCount"`
		FeeMultiplier     uint32           `json:"feeMultiplier"`
	} `json:"block"`
}

func (dto blockFrameDTO) toModel() (model.BlockInfo, error) {
	network, err := model.NetworkTypeFromValue(dto.Block.NetworkType)
	if err != nil {
		return model.BlockInfo{}, err
	}
	return model.BlockInfo{
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

// TransactionStatus is a status frame for a transaction that affected a
// watched address.
type TransactionStatus struct {
	Hash     string           `json:"hash"`
	Code     string           `json:"code"`
	Deadline model.Unsigned64 `json:"deadline"`
}

// NewBlock subscribes to confirmed block announcements.
func (l *Listener) NewBlock(h func(model.BlockInfo)) error {
	return l.subscribeBlocks(TopicBlock, h)
}

// FinalizedBlock subscribes to finalization announcements.
func (l *Listener) FinalizedBlock(h func(model.BlockInfo)) error {
	return l.subscribeBlocks(TopicFinalizedBlock, h)
}

func (l *Listener) subscribeBlocks(topic string, h func(model.BlockInfo)) error {
	return l.Subscribe(topic, func(payload json.RawMessage) {
		var dto blockFrameDTO
		if err := json.Unmarshal(payload, &dto); err != nil {
			l.lg.Warn("malformed block frame", "topic", topic, "error", err)
			return
		}
		block, err := dto.toModel()
		if err != nil {
			l.lg.Warn("malformed block frame", "topic", topic, "error", err)
			return
		}
		h(block)
	})
}

// ConfirmedAdded subscribes to transactions confirmed for an address. The
// payload is handed over raw: transaction wire formats are decoded by the
// caller.
func (l *Listener) ConfirmedAdded(addr model.Address, h func(payload json.RawMessage)) error {
	return l.Subscribe(AddressTopic(TopicConfirmedAdded, addr), h)
}

// Status subscribes to transaction status frames for an address.
func (l *Listener) Status(addr model.Address, h func(TransactionStatus)) error {
	topic := AddressTopic(TopicStatus, addr)
	return l.Subscribe(topic, func(payload json.RawMessage) {
		var status TransactionStatus
		if err := json.Unmarshal(payload, &status); err != nil {
			l.lg.Warn("malformed status frame", "topic", topic, "error", err)
			return
		}
		h(status)
	})
}
