package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/market/types"
)

// createLease allocates the next lease id and stores an Active lease for the
// matched order.
func (k Keeper) createLease(ctx context.Context, orderID, providerID uint64, startBlock, endBlock int64) (types.Lease, error) {
	id := k.nextLeaseID(ctx)
	lease := types.Lease{
		Id:         id,
		OrderId:    orderID,
		ProviderId: providerID,
		StartBlock: startBlock,
		EndBlock:   endBlock,
		State:      types.LeaseStateActive,
	}
	if err := k.setLease(ctx, lease); err != nil {
		return types.Lease{}, err
	}
	k.indexLease(ctx, orderID, id)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLeaseCreated,
			sdk.NewAttribute(types.AttributeKeyLeaseID, fmt.Sprintf("%d", id)),
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", orderID)),
			sdk.NewAttribute(types.AttributeKeyProviderID, fmt.Sprintf("%d", providerID)),
			sdk.NewAttribute(types.AttributeKeyStartBlock, fmt.Sprintf("%d", startBlock)),
			sdk.NewAttribute(types.AttributeKeyEndBlock, fmt.Sprintf("%d", endBlock)),
		),
	)

	return lease, nil
}

// SetLeaseContainer attaches a workload container reference to an Active
// lease.
func (k Keeper) SetLeaseContainer(ctx context.Context, leaseID uint64, container string) error {
	lease, err := k.GetLease(ctx, leaseID)
	if err != nil {
		return err
	}
	if lease.State != types.LeaseStateActive {
		return types.ErrLeaseNotActive.Wrapf("lease %d is %s", leaseID, lease.State)
	}

	lease.Container = container
	if err := k.setLease(ctx, lease); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLeaseUpdated,
			sdk.NewAttribute(types.AttributeKeyLeaseID, fmt.Sprintf("%d", leaseID)),
			sdk.NewAttribute(types.AttributeKeyContainer, container),
		),
	)

	return nil
}

// CloseLease ends an Active lease. A lease that reached its end block is
// Completed; one cut short is Canceled.
func (k Keeper) CloseLease(ctx context.Context, leaseID uint64) error {
	lease, err := k.GetLease(ctx, leaseID)
	if err != nil {
		return err
	}
	if lease.State != types.LeaseStateActive {
		return types.ErrLeaseNotActive.Wrapf("lease %d is %s", leaseID, lease.State)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if sdkCtx.BlockHeight() >= lease.EndBlock {
		lease.State = types.LeaseStateCompleted
	} else {
		lease.State = types.LeaseStateCanceled
	}
	if err := k.setLease(ctx, lease); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLeaseUpdated,
			sdk.NewAttribute(types.AttributeKeyLeaseID, fmt.Sprintf("%d", leaseID)),
			sdk.NewAttribute(types.AttributeKeyState, lease.State.String()),
		),
	)

	return nil
}

// GetLease returns the lease with the given id.
func (k Keeper) GetLease(ctx context.Context, id uint64) (types.Lease, error) {
	store := k.getStore(ctx)
	bz := store.Get(LeaseKey(id))
	if bz == nil {
		return types.Lease{}, types.ErrLeaseNotFound.Wrapf("id %d", id)
	}

	var lease types.Lease
	if err := json.Unmarshal(bz, &lease); err != nil {
		return types.Lease{}, types.ErrStorageFailed.Wrapf("corrupt lease record %d: %v", id, err)
	}
	return lease, nil
}

// LeasesByOrder returns all leases for an order. A well-formed order has at
// most one.
func (k Keeper) LeasesByOrder(ctx context.Context, orderID uint64) []types.Lease {
	store := k.getStore(ctx)
	prefix := LeasesByOrderIterPrefix(orderID)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var leases []types.Lease
	for ; iterator.Valid(); iterator.Next() {
		leaseID := sdk.BigEndianToUint64(iterator.Key()[len(prefix):])
		lease, err := k.GetLease(ctx, leaseID)
		if err != nil {
			continue
		}
		leases = append(leases, lease)
	}
	return leases
}

// GetLeaseCount returns the number of lease ids allocated so far.
func (k Keeper) GetLeaseCount(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(LeaseCountKey)
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

func (k Keeper) setLeaseCount(ctx context.Context, count uint64) {
	store := k.getStore(ctx)
	store.Set(LeaseCountKey, sdk.Uint64ToBigEndian(count))
}

func (k Keeper) nextLeaseID(ctx context.Context) uint64 {
	id := k.GetLeaseCount(ctx) + 1
	k.setLeaseCount(ctx, id)
	return id
}

func (k Keeper) setLease(ctx context.Context, lease types.Lease) error {
	bz, err := json.Marshal(&lease)
	if err != nil {
		return types.ErrStorageFailed.Wrapf("marshal lease %d: %v", lease.Id, err)
	}
	store := k.getStore(ctx)
	store.Set(LeaseKey(lease.Id), bz)
	return nil
}

func (k Keeper) indexLease(ctx context.Context, orderID, leaseID uint64) {
	store := k.getStore(ctx)
	store.Set(LeasesByOrderKey(orderID, leaseID), []byte{})
}
