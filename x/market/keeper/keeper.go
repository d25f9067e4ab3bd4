package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/market/types"
)

// Keeper of the market store
type Keeper struct {
	storeKey       storetypes.StoreKey
	escrowKeeper   types.EscrowKeeper
	registryKeeper types.RegistryKeeper
}

type kvStoreProvider interface {
	KVStore(key storetypes.StoreKey) storetypes.KVStore
}

// NewKeeper creates a new market Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	escrowKeeper types.EscrowKeeper,
	registryKeeper types.RegistryKeeper,
) *Keeper {
	return &Keeper{
		storeKey:       key,
		escrowKeeper:   escrowKeeper,
		registryKeeper: registryKeeper,
	}
}

// getStore returns the KVStore for the market module
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
