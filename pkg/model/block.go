package model

// BlockInfo is the decoded header of one confirmed block.
type BlockInfo struct {
	Hash              string
	Height            Unsigned64
	Timestamp         Unsigned64
	SignerPublicKey   string
	Network           NetworkType
	PreviousBlockHash string
	TransactionsCount int
	FeeMultiplier     uint32
}

// ChainInfo is the node's view of the chain tip.
type ChainInfo struct {
	Height          Unsigned64
	FinalizedHeight Unsigned64
	ScoreLow        Unsigned64
	ScoreHigh       Unsigned64
}

// NodeInfo describes the node itself, including the generation hash that
// scopes every object it serves to one specific ledger instance.
type NodeInfo struct {
	Version        uint32
	PublicKey      string
	GenerationHash string
	Roles          uint32
	Host           string
	FriendlyName   string
	Network        NetworkType
}
