package keeper

import (
	"context"
	"fmt"

	"github.com/vela-compute/vela/x/market/types"
)

// InitGenesis restores market state from a genesis snapshot.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid market genesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}
	for _, order := range genState.Orders {
		if err := k.setOrder(ctx, order); err != nil {
			return err
		}
	}
	for _, bid := range genState.Bids {
		if err := k.setBid(ctx, bid); err != nil {
			return err
		}
		k.indexBid(ctx, bid.OrderId, bid.Id)
		if bid.State == types.BidStateMatched {
			k.addProviderOrder(ctx, bid.ProviderId, bid.OrderId)
		}
	}
	for _, lease := range genState.Leases {
		if err := k.setLease(ctx, lease); err != nil {
			return err
		}
		k.indexLease(ctx, lease.OrderId, lease.Id)
	}
	k.setOrderCount(ctx, genState.OrderCount)
	k.setBidCount(ctx, genState.BidCount)
	k.setLeaseCount(ctx, genState.LeaseCount)
	return nil
}

// ExportGenesis captures the full market state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	genState := &types.GenesisState{
		Params:     params,
		Orders:     k.ListOrders(ctx),
		OrderCount: k.GetOrderCount(ctx),
		BidCount:   k.GetBidCount(ctx),
		LeaseCount: k.GetLeaseCount(ctx),
	}
	bidCount := genState.BidCount
	for id := uint64(1); id <= bidCount; id++ {
		bid, err := k.GetBid(ctx, id)
		if err != nil {
			continue
		}
		genState.Bids = append(genState.Bids, bid)
	}
	leaseCount := genState.LeaseCount
	for id := uint64(1); id <= leaseCount; id++ {
		lease, err := k.GetLease(ctx, id)
		if err != nil {
			continue
		}
		genState.Leases = append(genState.Leases, lease)
	}
	return genState, nil
}
