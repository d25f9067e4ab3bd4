package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/market/types"
)

// PlaceBid records a provider's offer on an Active order and returns the bid
// id. The price must not exceed the order ceiling, the provider must be in a
// status that accepts work, and it must clear the order's trust screening.
func (k Keeper) PlaceBid(ctx context.Context, orderID, providerID uint64, price math.Int) (uint64, error) {
	if price.IsNil() || !price.IsPositive() {
		return 0, types.ErrInvalidBid.Wrap("bid price must be positive")
	}

	order, err := k.GetOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if order.State != types.OrderStateActive {
		return 0, types.ErrOrderNotActive.Wrapf("order %d is %s", orderID, order.State)
	}
	if price.GT(order.MaxPrice) {
		return 0, types.ErrInvalidBid.Wrapf("%s > max price %s", price, order.MaxPrice)
	}

	provider, err := k.registryKeeper.GetProvider(ctx, providerID)
	if err != nil {
		return 0, types.ErrProviderIneligible.Wrapf("provider %d: %v", providerID, err)
	}
	if !provider.Status.Accepting() {
		return 0, types.ErrProviderIneligible.Wrapf("provider %d is %s", providerID, provider.Status)
	}
	if !order.Spec.Accepts(provider.TrustLevel) {
		return 0, types.ErrProviderIneligible.Wrapf("provider %d trust level %s below order requirement",
			providerID, provider.TrustLevel)
	}

	id := k.nextBidID(ctx)
	bid := types.Bid{
		Id:         id,
		OrderId:    orderID,
		ProviderId: providerID,
		Price:      price,
		State:      types.BidStateActive,
	}
	if err := k.setBid(ctx, bid); err != nil {
		return 0, err
	}
	k.indexBid(ctx, orderID, id)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBidPlaced,
			sdk.NewAttribute(types.AttributeKeyBidID, fmt.Sprintf("%d", id)),
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", orderID)),
			sdk.NewAttribute(types.AttributeKeyProviderID, fmt.Sprintf("%d", providerID)),
			sdk.NewAttribute(types.AttributeKeyPrice, price.String()),
		),
	)

	return id, nil
}

// CancelBid retires an Active bid.
func (k Keeper) CancelBid(ctx context.Context, bidID uint64) error {
	bid, err := k.GetBid(ctx, bidID)
	if err != nil {
		return err
	}
	if bid.State != types.BidStateActive {
		return types.ErrBidNotActive.Wrapf("bid %d is %s", bidID, bid.State)
	}

	bid.State = types.BidStateCanceled
	if err := k.setBid(ctx, bid); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBidCanceled,
			sdk.NewAttribute(types.AttributeKeyBidID, fmt.Sprintf("%d", bidID)),
		),
	)

	return nil
}

// AcceptBid matches an Active bid against its Active order: the bid becomes
// Matched, sibling Active bids are canceled, the order completes with its
// max price overwritten by the settled bid price, the match lands in the
// provider's history, and a lease starts at the current block height.
//
// Fund settlement is not performed here; use MatchOrder for the atomic
// accept-and-settle flow.
func (k Keeper) AcceptBid(ctx context.Context, bidID uint64) (types.Lease, error) {
	bid, err := k.GetBid(ctx, bidID)
	if err != nil {
		return types.Lease{}, err
	}
	if bid.State != types.BidStateActive {
		return types.Lease{}, types.ErrBidNotActive.Wrapf("bid %d is %s", bidID, bid.State)
	}

	order, err := k.GetOrder(ctx, bid.OrderId)
	if err != nil {
		return types.Lease{}, err
	}
	if order.State != types.OrderStateActive {
		return types.Lease{}, types.ErrOrderNotActive.Wrapf("order %d is %s", order.Id, order.State)
	}

	bid.State = types.BidStateMatched
	if err := k.setBid(ctx, bid); err != nil {
		return types.Lease{}, err
	}
	if err := k.cancelActiveBids(ctx, order.Id, bid.Id); err != nil {
		return types.Lease{}, err
	}

	// Post-acceptance the field records the settled price, not the ceiling.
	order.State = types.OrderStateComplete
	order.MaxPrice = bid.Price
	if err := k.setOrder(ctx, order); err != nil {
		return types.Lease{}, err
	}
	k.addProviderOrder(ctx, bid.ProviderId, order.Id)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	startBlock := sdkCtx.BlockHeight()
	lease, err := k.createLease(ctx, order.Id, bid.ProviderId, startBlock, startBlock+int64(order.NumBlocks))
	if err != nil {
		return types.Lease{}, err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBidAccepted,
			sdk.NewAttribute(types.AttributeKeyBidID, fmt.Sprintf("%d", bid.Id)),
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", order.Id)),
			sdk.NewAttribute(types.AttributeKeyProviderID, fmt.Sprintf("%d", bid.ProviderId)),
			sdk.NewAttribute(types.AttributeKeyPrice, bid.Price.String()),
			sdk.NewAttribute(types.AttributeKeyLeaseID, fmt.Sprintf("%d", lease.Id)),
		),
	)

	return lease, nil
}

// GetBid returns the bid with the given id.
func (k Keeper) GetBid(ctx context.Context, id uint64) (types.Bid, error) {
	store := k.getStore(ctx)
	bz := store.Get(BidKey(id))
	if bz == nil {
		return types.Bid{}, types.ErrBidNotFound.Wrapf("id %d", id)
	}

	var bid types.Bid
	if err := json.Unmarshal(bz, &bid); err != nil {
		return types.Bid{}, types.ErrStorageFailed.Wrapf("corrupt bid record %d: %v", id, err)
	}
	return bid, nil
}

// BidsByOrder returns all bids placed on an order, in placement order.
func (k Keeper) BidsByOrder(ctx context.Context, orderID uint64) []types.Bid {
	store := k.getStore(ctx)
	prefix := BidsByOrderIterPrefix(orderID)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var bids []types.Bid
	for ; iterator.Valid(); iterator.Next() {
		bidID := sdk.BigEndianToUint64(iterator.Key()[len(prefix):])
		bid, err := k.GetBid(ctx, bidID)
		if err != nil {
			continue
		}
		bids = append(bids, bid)
	}
	return bids
}

// GetBidCount returns the number of bid ids allocated so far.
func (k Keeper) GetBidCount(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(BidCountKey)
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

func (k Keeper) setBidCount(ctx context.Context, count uint64) {
	store := k.getStore(ctx)
	store.Set(BidCountKey, sdk.Uint64ToBigEndian(count))
}

func (k Keeper) nextBidID(ctx context.Context) uint64 {
	id := k.GetBidCount(ctx) + 1
	k.setBidCount(ctx, id)
	return id
}

func (k Keeper) setBid(ctx context.Context, bid types.Bid) error {
	bz, err := json.Marshal(&bid)
	if err != nil {
		return types.ErrStorageFailed.Wrapf("marshal bid %d: %v", bid.Id, err)
	}
	store := k.getStore(ctx)
	store.Set(BidKey(bid.Id), bz)
	return nil
}

func (k Keeper) indexBid(ctx context.Context, orderID, bidID uint64) {
	store := k.getStore(ctx)
	store.Set(BidsByOrderKey(orderID, bidID), []byte{})
}

// cancelActiveBids cancels every Active bid on the order except keepID.
func (k Keeper) cancelActiveBids(ctx context.Context, orderID, keepID uint64) error {
	for _, bid := range k.BidsByOrder(ctx, orderID) {
		if bid.Id == keepID || bid.State != types.BidStateActive {
			continue
		}
		bid.State = types.BidStateCanceled
		if err := k.setBid(ctx, bid); err != nil {
			return err
		}
	}
	return nil
}
