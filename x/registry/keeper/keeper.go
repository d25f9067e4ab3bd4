package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/registry/types"
)

// Keeper of the provider registry store
type Keeper struct {
	storeKey  storetypes.StoreKey
	authority string
}

type kvStoreProvider interface {
	KVStore(key storetypes.StoreKey) storetypes.KVStore
}

// NewKeeper creates a new registry Keeper instance. The authority address is
// the only caller allowed to change trust levels and provider statuses.
func NewKeeper(key storetypes.StoreKey, authority string) *Keeper {
	return &Keeper{
		storeKey:  key,
		authority: authority,
	}
}

// GetAuthority returns the registry module's authority address.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// getStore returns the KVStore for the registry module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	if provider, ok := ctx.(kvStoreProvider); ok {
		return provider.KVStore(k.storeKey)
	}

	unwrapped := sdk.UnwrapSDKContext(ctx)
	return unwrapped.KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}
