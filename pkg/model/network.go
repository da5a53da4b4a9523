package model

import "fmt"

// NetworkType identifies the ledger network an object belongs to. It doubles
// as the first byte of every address on that network, so mixing objects across
// networks fails address validation immediately.
type NetworkType uint8

const (
	NetworkMainnet NetworkType = 0x68
	NetworkTestnet NetworkType = 0x98
	NetworkDevnet  NetworkType = 0x60
)

// NetworkTypeFromValue validates a raw network type code from the wire.
func NetworkTypeFromValue(v uint8) (NetworkType, error) {
	switch n := NetworkType(v); n {
	case NetworkMainnet, NetworkTestnet, NetworkDevnet:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: unknown network type %d", ErrMalformedValue, v)
	}
}

func (n NetworkType) String() string {
	switch n {
	case NetworkMainnet:
		return "mainnet"
	case NetworkTestnet:
		return "testnet"
	case NetworkDevnet:
		return "devnet"
	default:
		return fmt.Sprintf("network(%d)", uint8(n))
	}
}
