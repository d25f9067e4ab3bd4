package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/vela-compute/vela/x/escrow/types"
)

// CustodyAddress returns the module account that holds all escrowed funds.
func CustodyAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

// Keeper of the escrow store
type Keeper struct {
	storeKey       storetypes.StoreKey
	bankKeeper     types.BankKeeper
	registryKeeper types.RegistryKeeper
}

type kvStoreProvider interface {
	KVStore(key storetypes.StoreKey) storetypes.KVStore
}

// NewKeeper creates a new escrow Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	registryKeeper types.RegistryKeeper,
) *Keeper {
	return &Keeper{
		storeKey:       key,
		bankKeeper:     bankKeeper,
		registryKeeper: registryKeeper,
	}
}

// UpdateProviderRegistry swaps the registry the escrow resolves providers
// through. Admin reconfiguration; callers gate access.
func (k *Keeper) UpdateProviderRegistry(registryKeeper types.RegistryKeeper) {
	k.registryKeeper = registryKeeper
}

// GetProviderRegistry returns the registry currently consulted.
func (k Keeper) GetProviderRegistry() types.RegistryKeeper {
	return k.registryKeeper
}

// getStore returns the KVStore for the escrow module
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
