package keeper

import (
	"context"
	"fmt"

	"github.com/vela-compute/vela/x/registry/types"
)

// InitGenesis restores the registry state from a genesis snapshot.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid registry genesis: %w", err)
	}

	for _, provider := range genState.Providers {
		if err := k.setProvider(ctx, provider); err != nil {
			return err
		}
		// Deactivated records may share an address with a live successor; only
		// the live record owns the reverse index entry.
		if provider.Status != types.ProviderStatusDeactivated {
			k.setProviderIDByAddress(ctx, provider.Address, provider.Id)
		}
	}
	k.setProviderCount(ctx, genState.ProviderCount)
	return nil
}

// ExportGenesis captures the full registry state.
func (k Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	return &types.GenesisState{
		Providers:     k.ListProviders(ctx),
		ProviderCount: k.GetProviderCount(ctx),
	}
}
