package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/registry/types"
)

// AddProvider registers the address as a compute provider and returns its id.
// Registration is idempotent: if the address already maps to a record that is
// not Deactivated, the existing id is returned and nothing changes. A
// deactivated address gets a brand-new id and record; old ids are never reused.
func (k Keeper) AddProvider(ctx context.Context, address sdk.AccAddress) (uint64, error) {
	if address.Empty() {
		return 0, types.ErrInvalidAddress.Wrap("empty address")
	}

	addr := address.String()
	if id, found := k.getProviderIDByAddress(ctx, addr); found {
		existing, err := k.GetProvider(ctx, id)
		if err != nil {
			return 0, err
		}
		if existing.Status != types.ProviderStatusDeactivated {
			return id, nil
		}
	}

	id := k.nextProviderID(ctx)
	provider := types.NewProvider(id, addr)
	if err := k.setProvider(ctx, provider); err != nil {
		return 0, err
	}
	k.setProviderIDByAddress(ctx, addr, id)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProviderRegistered,
			sdk.NewAttribute(types.AttributeKeyProviderID, fmt.Sprintf("%d", id)),
			sdk.NewAttribute(types.AttributeKeyAddress, addr),
		),
	)

	return id, nil
}

// SetTrustLevel overwrites a provider's trust level. Only the registry
// authority may call this.
func (k Keeper) SetTrustLevel(ctx context.Context, caller sdk.AccAddress, id uint64, level types.TrustLevel) error {
	if caller.String() != k.authority {
		return types.ErrUnauthorized.Wrapf("caller %s is not the registry authority", caller)
	}
	if err := level.Validate(); err != nil {
		return types.ErrInvalidTrustLevel.Wrap(err.Error())
	}

	provider, err := k.GetProvider(ctx, id)
	if err != nil {
		return err
	}

	provider.TrustLevel = level
	if err := k.setProvider(ctx, provider); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProviderTrustUpdated,
			sdk.NewAttribute(types.AttributeKeyProviderID, fmt.Sprintf("%d", id)),
			sdk.NewAttribute(types.AttributeKeyTrustLevel, level.String()),
		),
	)

	return nil
}

// SetProviderStatus moves a provider to a new operational status. Only the
// registry authority may call this, and the transition must be legal:
// Deactivated is terminal.
func (k Keeper) SetProviderStatus(ctx context.Context, caller sdk.AccAddress, id uint64, status types.ProviderStatus) error {
	if caller.String() != k.authority {
		return types.ErrUnauthorized.Wrapf("caller %s is not the registry authority", caller)
	}
	if err := status.Validate(); err != nil {
		return types.ErrInvalidStatus.Wrap(err.Error())
	}

	provider, err := k.GetProvider(ctx, id)
	if err != nil {
		return err
	}

	if !provider.Status.CanTransitionTo(status) {
		return types.ErrIllegalTransition.Wrapf("%s -> %s", provider.Status, status)
	}

	provider.Status = status
	if err := k.setProvider(ctx, provider); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProviderStatusSet,
			sdk.NewAttribute(types.AttributeKeyProviderID, fmt.Sprintf("%d", id)),
			sdk.NewAttribute(types.AttributeKeyStatus, status.String()),
		),
	)

	return nil
}

// GetProvider returns the provider record for the given id.
func (k Keeper) GetProvider(ctx context.Context, id uint64) (types.Provider, error) {
	store := k.getStore(ctx)
	bz := store.Get(ProviderKey(id))
	if bz == nil {
		return types.Provider{}, types.ErrProviderNotFound.Wrapf("id %d", id)
	}

	var provider types.Provider
	if err := json.Unmarshal(bz, &provider); err != nil {
		return types.Provider{}, types.ErrStorageFailed.Wrapf("corrupt provider record %d: %v", id, err)
	}
	return provider, nil
}

// GetProviderByAddress resolves an owner address to its provider id and record.
func (k Keeper) GetProviderByAddress(ctx context.Context, address sdk.AccAddress) (uint64, types.Provider, error) {
	id, found := k.getProviderIDByAddress(ctx, address.String())
	if !found {
		return 0, types.Provider{}, types.ErrProviderNotFound.Wrapf("address %s", address)
	}
	provider, err := k.GetProvider(ctx, id)
	if err != nil {
		return 0, types.Provider{}, err
	}
	return id, provider, nil
}

// ListProviders returns all provider records in ascending id order.
func (k Keeper) ListProviders(ctx context.Context) []types.Provider {
	var providers []types.Provider
	count := k.GetProviderCount(ctx)
	for id := uint64(1); id <= count; id++ {
		provider, err := k.GetProvider(ctx, id)
		if err != nil {
			continue
		}
		providers = append(providers, provider)
	}
	return providers
}

// GetProviderCount returns the number of ids allocated so far.
func (k Keeper) GetProviderCount(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(ProviderCountKey)
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

func (k Keeper) setProviderCount(ctx context.Context, count uint64) {
	store := k.getStore(ctx)
	store.Set(ProviderCountKey, sdk.Uint64ToBigEndian(count))
}

// nextProviderID bumps the provider counter and returns the new id. The bump
// is written in the same operation as the record it numbers.
func (k Keeper) nextProviderID(ctx context.Context) uint64 {
	id := k.GetProviderCount(ctx) + 1
	k.setProviderCount(ctx, id)
	return id
}

func (k Keeper) setProvider(ctx context.Context, provider types.Provider) error {
	bz, err := json.Marshal(&provider)
	if err != nil {
		return types.ErrStorageFailed.Wrapf("marshal provider %d: %v", provider.Id, err)
	}
	store := k.getStore(ctx)
	store.Set(ProviderKey(provider.Id), bz)
	return nil
}

func (k Keeper) getProviderIDByAddress(ctx context.Context, address string) (uint64, bool) {
	store := k.getStore(ctx)
	bz := store.Get(ProviderByAddressKey(address))
	if bz == nil {
		return 0, false
	}
	return sdk.BigEndianToUint64(bz), true
}

func (k Keeper) setProviderIDByAddress(ctx context.Context, address string, id uint64) {
	store := k.getStore(ctx)
	store.Set(ProviderByAddressKey(address), sdk.Uint64ToBigEndian(id))
}
