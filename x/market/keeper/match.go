package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/market/types"
)

// MatchOrder accepts a bid and settles the tenant's locked funds to the
// winning provider as one atomic operation: either the order completes, the
// lease exists, and the provider is credited, or nothing changed. State is
// staged on a branched store and only committed once both the acceptance and
// the settlement succeed.
func (k Keeper) MatchOrder(ctx context.Context, bidID uint64) (types.Lease, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	bid, err := k.GetBid(cacheCtx, bidID)
	if err != nil {
		return types.Lease{}, err
	}
	order, err := k.GetOrder(cacheCtx, bid.OrderId)
	if err != nil {
		return types.Lease{}, err
	}
	owner, err := sdk.AccAddressFromBech32(order.Owner)
	if err != nil {
		return types.Lease{}, types.ErrInvalidOrder.Wrapf("order %d owner: %v", order.Id, err)
	}

	lease, err := k.AcceptBid(cacheCtx, bidID)
	if err != nil {
		return types.Lease{}, err
	}

	if err := k.escrowKeeper.Settle(cacheCtx, order.Denom, owner, bid.Price, bid.ProviderId); err != nil {
		return types.Lease{}, types.ErrSettlementFailed.Wrapf("order %d, bid %d: %v", order.Id, bid.Id, err)
	}

	write()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOrderMatched,
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", order.Id)),
			sdk.NewAttribute(types.AttributeKeyBidID, fmt.Sprintf("%d", bid.Id)),
			sdk.NewAttribute(types.AttributeKeyProviderID, fmt.Sprintf("%d", bid.ProviderId)),
			sdk.NewAttribute(types.AttributeKeyPrice, bid.Price.String()),
			sdk.NewAttribute(types.AttributeKeyLeaseID, fmt.Sprintf("%d", lease.Id)),
		),
	)

	return lease, nil
}
