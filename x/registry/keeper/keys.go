package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	// ProviderCountKey is the key for the provider id counter
	ProviderCountKey = []byte{0x01}

	// ProviderKeyPrefix is the prefix for id -> provider storage
	ProviderKeyPrefix = []byte{0x02}

	// ProviderByAddressPrefix is the prefix for the address -> id reverse index
	ProviderByAddressPrefix = []byte{0x03}
)

// ProviderKey returns the store key for a provider record.
func ProviderKey(id uint64) []byte {
	return append(ProviderKeyPrefix, sdk.Uint64ToBigEndian(id)...)
}

// ProviderByAddressKey returns the reverse index key for an owner address.
func ProviderByAddressKey(address string) []byte {
	return append(ProviderByAddressPrefix, []byte(address)...)
}
