package model

// AccountInfo is the decoded state of one account known to the node.
type AccountInfo struct {
	Address         Address
	AddressHeight   Unsigned64
	PublicKey       string // empty until the account has signed something
	PublicKeyHeight Unsigned64
	Importance      Unsigned64
	Balances        []TokenBalance
}
