package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	registrytypes "github.com/vela-compute/vela/x/registry/types"
	"github.com/vela-compute/vela/x/market/types"
)

// CreateOrder opens a new Active order and returns its id. Spec content and
// quantity are stored opaquely; only price and duration are validated.
func (k Keeper) CreateOrder(
	ctx context.Context,
	owner sdk.AccAddress,
	denom string,
	maxPrice math.Int,
	numBlocks uint64,
	quantity uint64,
	spec string,
	trustLevels []registrytypes.TrustLevel,
) (uint64, error) {
	if maxPrice.IsNil() || !maxPrice.IsPositive() {
		return 0, types.ErrInvalidOrder.Wrap("max price must be positive")
	}
	if err := sdk.ValidateDenom(denom); err != nil {
		return 0, types.ErrInvalidOrder.Wrapf("denom: %v", err)
	}
	for _, level := range trustLevels {
		if err := level.Validate(); err != nil {
			return 0, types.ErrInvalidOrder.Wrap(err.Error())
		}
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, err
	}
	if numBlocks < params.MinLeaseBlocks || numBlocks > params.MaxLeaseBlocks {
		return 0, types.ErrInvalidOrder.Wrapf("duration %d blocks outside [%d, %d]",
			numBlocks, params.MinLeaseBlocks, params.MaxLeaseBlocks)
	}

	id := k.nextOrderID(ctx)
	order := types.Order{
		Id:       id,
		Owner:    owner.String(),
		Denom:    denom,
		MaxPrice: maxPrice,
		State:    types.OrderStateActive,
		Spec: types.Specification{
			Spec:        spec,
			Quantity:    quantity,
			TrustLevels: trustLevels,
			MaxPrice:    maxPrice,
		},
		NumBlocks: numBlocks,
	}
	if err := k.setOrder(ctx, order); err != nil {
		return 0, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOrderCreated,
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", id)),
			sdk.NewAttribute(types.AttributeKeyOwner, order.Owner),
			sdk.NewAttribute(types.AttributeKeyPrice, maxPrice.String()),
		),
	)

	return id, nil
}

// CloseOrder cancels an Active order and every Active bid still standing on
// it. Closed and Complete orders stay as they are: closing a completed order
// would orphan its lease.
func (k Keeper) CloseOrder(ctx context.Context, orderID uint64) error {
	order, err := k.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.State != types.OrderStateActive {
		return types.ErrOrderNotActive.Wrapf("order %d is %s", orderID, order.State)
	}

	if err := k.cancelActiveBids(ctx, orderID, 0); err != nil {
		return err
	}

	order.State = types.OrderStateClosed
	if err := k.setOrder(ctx, order); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOrderClosed,
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", orderID)),
		),
	)

	return nil
}

// GetOrder returns the order with the given id.
func (k Keeper) GetOrder(ctx context.Context, id uint64) (types.Order, error) {
	store := k.getStore(ctx)
	bz := store.Get(OrderKey(id))
	if bz == nil {
		return types.Order{}, types.ErrOrderNotFound.Wrapf("id %d", id)
	}

	var order types.Order
	if err := json.Unmarshal(bz, &order); err != nil {
		return types.Order{}, types.ErrStorageFailed.Wrapf("corrupt order record %d: %v", id, err)
	}
	return order, nil
}

// ListOrders returns all orders in ascending id order.
func (k Keeper) ListOrders(ctx context.Context) []types.Order {
	var orders []types.Order
	count := k.GetOrderCount(ctx)
	for id := uint64(1); id <= count; id++ {
		order, err := k.GetOrder(ctx, id)
		if err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders
}

// ProviderOrders returns the ids of orders matched to the provider, in the
// order they were won.
func (k Keeper) ProviderOrders(ctx context.Context, providerID uint64) []uint64 {
	store := k.getStore(ctx)
	prefix := ProviderOrdersIterPrefix(providerID)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var orderIDs []uint64
	for ; iterator.Valid(); iterator.Next() {
		orderIDs = append(orderIDs, sdk.BigEndianToUint64(iterator.Key()[len(prefix):]))
	}
	return orderIDs
}

// GetOrderCount returns the number of order ids allocated so far.
func (k Keeper) GetOrderCount(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(OrderCountKey)
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

func (k Keeper) setOrderCount(ctx context.Context, count uint64) {
	store := k.getStore(ctx)
	store.Set(OrderCountKey, sdk.Uint64ToBigEndian(count))
}

func (k Keeper) nextOrderID(ctx context.Context) uint64 {
	id := k.GetOrderCount(ctx) + 1
	k.setOrderCount(ctx, id)
	return id
}

func (k Keeper) setOrder(ctx context.Context, order types.Order) error {
	bz, err := json.Marshal(&order)
	if err != nil {
		return types.ErrStorageFailed.Wrapf("marshal order %d: %v", order.Id, err)
	}
	store := k.getStore(ctx)
	store.Set(OrderKey(order.Id), bz)
	return nil
}

func (k Keeper) addProviderOrder(ctx context.Context, providerID, orderID uint64) {
	store := k.getStore(ctx)
	store.Set(ProviderOrdersKey(providerID, orderID), []byte{})
}
