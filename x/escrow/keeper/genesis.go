package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/escrow/types"
)

// InitGenesis restores escrow state from a genesis snapshot.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid escrow genesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}
	for _, rec := range genState.Tenants {
		tenant, err := sdk.AccAddressFromBech32(rec.Tenant)
		if err != nil {
			return fmt.Errorf("invalid tenant address %s: %w", rec.Tenant, err)
		}
		if err := k.setTenantAccount(ctx, tenant, rec.Denom, rec.Account); err != nil {
			return err
		}
	}
	for _, rec := range genState.Earnings {
		if err := k.setProviderEarnings(ctx, rec.ProviderId, rec.Denom, rec.Earnings); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis captures the full escrow state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	genState := &types.GenesisState{Params: params}
	err = k.IterateTenantAccounts(ctx, func(tenant sdk.AccAddress, denom string, account types.TenantAccount) (bool, error) {
		genState.Tenants = append(genState.Tenants, types.TenantBalanceRecord{
			Tenant:  tenant.String(),
			Denom:   denom,
			Account: account,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.IterateProviderEarnings(ctx, func(providerID uint64, denom string, earnings types.ProviderEarnings) (bool, error) {
		genState.Earnings = append(genState.Earnings, types.ProviderEarningsRecord{
			ProviderId: providerID,
			Denom:      denom,
			Earnings:   earnings,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return genState, nil
}

// IterateTenantAccounts walks every tenant balance record. The callback
// returns true to stop early.
func (k Keeper) IterateTenantAccounts(ctx context.Context, fn func(tenant sdk.AccAddress, denom string, account types.TenantAccount) (bool, error)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, TenantKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var account types.TenantAccount
		if err := json.Unmarshal(iterator.Value(), &account); err != nil {
			return types.ErrStorageFailed.Wrapf("corrupt tenant record: %v", err)
		}
		tenant, denom := parseTenantKey(iterator.Key())
		stop, err := fn(tenant, denom, account)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}

// IterateProviderEarnings walks every provider earnings record.
func (k Keeper) IterateProviderEarnings(ctx context.Context, fn func(providerID uint64, denom string, earnings types.ProviderEarnings) (bool, error)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, EarningsKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var earnings types.ProviderEarnings
		if err := json.Unmarshal(iterator.Value(), &earnings); err != nil {
			return types.ErrStorageFailed.Wrapf("corrupt earnings record: %v", err)
		}
		providerID, denom := parseEarningsKey(iterator.Key())
		stop, err := fn(providerID, denom, earnings)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}
