package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x00}

	// OrderCountKey is the key for the order id counter
	OrderCountKey = []byte{0x01}

	// OrderKeyPrefix is the prefix for order storage
	OrderKeyPrefix = []byte{0x02}

	// BidCountKey is the key for the bid id counter
	BidCountKey = []byte{0x03}

	// BidKeyPrefix is the prefix for bid storage
	BidKeyPrefix = []byte{0x04}

	// LeaseCountKey is the key for the lease id counter
	LeaseCountKey = []byte{0x05}

	// LeaseKeyPrefix is the prefix for lease storage
	LeaseKeyPrefix = []byte{0x06}

	// BidsByOrderPrefix indexes bid ids under their order
	BidsByOrderPrefix = []byte{0x07}

	// LeasesByOrderPrefix indexes lease ids under their order
	LeasesByOrderPrefix = []byte{0x08}

	// ProviderOrdersPrefix indexes matched order ids under their provider
	ProviderOrdersPrefix = []byte{0x09}
)

// OrderKey returns the store key for an order.
func OrderKey(id uint64) []byte {
	return append(OrderKeyPrefix, sdk.Uint64ToBigEndian(id)...)
}

// BidKey returns the store key for a bid.
func BidKey(id uint64) []byte {
	return append(BidKeyPrefix, sdk.Uint64ToBigEndian(id)...)
}

// LeaseKey returns the store key for a lease.
func LeaseKey(id uint64) []byte {
	return append(LeaseKeyPrefix, sdk.Uint64ToBigEndian(id)...)
}

// BidsByOrderKey returns the index key for a bid under its order.
func BidsByOrderKey(orderID, bidID uint64) []byte {
	key := append(BidsByOrderPrefix, sdk.Uint64ToBigEndian(orderID)...)
	return append(key, sdk.Uint64ToBigEndian(bidID)...)
}

// BidsByOrderIterPrefix returns the iteration prefix for one order's bids.
func BidsByOrderIterPrefix(orderID uint64) []byte {
	return append(BidsByOrderPrefix, sdk.Uint64ToBigEndian(orderID)...)
}

// LeasesByOrderKey returns the index key for a lease under its order.
func LeasesByOrderKey(orderID, leaseID uint64) []byte {
	key := append(LeasesByOrderPrefix, sdk.Uint64ToBigEndian(orderID)...)
	return append(key, sdk.Uint64ToBigEndian(leaseID)...)
}

// LeasesByOrderIterPrefix returns the iteration prefix for one order's leases.
func LeasesByOrderIterPrefix(orderID uint64) []byte {
	return append(LeasesByOrderPrefix, sdk.Uint64ToBigEndian(orderID)...)
}

// ProviderOrdersKey returns the history key for a matched order under its provider.
func ProviderOrdersKey(providerID, orderID uint64) []byte {
	key := append(ProviderOrdersPrefix, sdk.Uint64ToBigEndian(providerID)...)
	return append(key, sdk.Uint64ToBigEndian(orderID)...)
}

// ProviderOrdersIterPrefix returns the iteration prefix for one provider's history.
func ProviderOrdersIterPrefix(providerID uint64) []byte {
	return append(ProviderOrdersPrefix, sdk.Uint64ToBigEndian(providerID)...)
}
