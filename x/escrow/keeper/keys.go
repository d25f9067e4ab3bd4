package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x00}

	// TenantKeyPrefix is the prefix for (tenant, denom) -> TenantAccount storage
	TenantKeyPrefix = []byte{0x01}

	// EarningsKeyPrefix is the prefix for (provider id, denom) -> ProviderEarnings storage
	EarningsKeyPrefix = []byte{0x02}
)

// TenantKey returns the store key for a tenant's balance in one denom. The
// address is length-prefixed so keys parse unambiguously on iteration.
func TenantKey(tenant sdk.AccAddress, denom string) []byte {
	key := append(TenantKeyPrefix, address.MustLengthPrefix(tenant)...)
	return append(key, []byte(denom)...)
}

// EarningsKey returns the store key for a provider's earnings in one denom.
func EarningsKey(providerID uint64, denom string) []byte {
	key := append(EarningsKeyPrefix, sdk.Uint64ToBigEndian(providerID)...)
	return append(key, []byte(denom)...)
}

// parseTenantKey splits a full tenant store key back into address and denom.
func parseTenantKey(key []byte) (sdk.AccAddress, string) {
	rest := key[len(TenantKeyPrefix):]
	addrLen := int(rest[0])
	addr := sdk.AccAddress(rest[1 : 1+addrLen])
	return addr, string(rest[1+addrLen:])
}

// parseEarningsKey splits a full earnings store key into provider id and denom.
func parseEarningsKey(key []byte) (uint64, string) {
	rest := key[len(EarningsKeyPrefix):]
	return sdk.BigEndianToUint64(rest[:8]), string(rest[8:])
}
