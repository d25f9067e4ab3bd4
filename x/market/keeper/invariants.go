package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/market/types"
)

// RegisterInvariants registers all market module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "id-counters", IDCountersInvariant(k))
	ir.RegisterRoute(types.ModuleName, "match-consistency", MatchConsistencyInvariant(k))
}

// AllInvariants runs all invariants of the market module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := IDCountersInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return MatchConsistencyInvariant(k)(ctx)
	}
}

// IDCountersInvariant checks that no stored record carries an id beyond its
// counter.
func IDCountersInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		orderCount := k.GetOrderCount(ctx)
		for _, order := range k.ListOrders(ctx) {
			if order.Id > orderCount {
				return sdk.FormatInvariant(
					types.ModuleName, "id-counters",
					fmt.Sprintf("order id %d exceeds counter %d", order.Id, orderCount),
				), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "id-counters", "all ids within counters"), false
	}
}

// MatchConsistencyInvariant checks that every Matched bid points at a
// Complete order with exactly one lease, and every Complete order has a
// Matched bid.
func MatchConsistencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		matchedOrders := make(map[uint64]bool)

		bidCount := k.GetBidCount(ctx)
		for id := uint64(1); id <= bidCount; id++ {
			bid, err := k.GetBid(ctx, id)
			if err != nil {
				continue
			}
			if bid.State != types.BidStateMatched {
				continue
			}
			order, err := k.GetOrder(ctx, bid.OrderId)
			if err != nil || order.State != types.OrderStateComplete {
				return sdk.FormatInvariant(
					types.ModuleName, "match-consistency",
					fmt.Sprintf("matched bid %d has no complete order %d", bid.Id, bid.OrderId),
				), true
			}
			if leases := k.LeasesByOrder(ctx, order.Id); len(leases) != 1 {
				return sdk.FormatInvariant(
					types.ModuleName, "match-consistency",
					fmt.Sprintf("order %d has %d leases, want 1", order.Id, len(leases)),
				), true
			}
			matchedOrders[bid.OrderId] = true
		}

		for _, order := range k.ListOrders(ctx) {
			if order.State == types.OrderStateComplete && !matchedOrders[order.Id] {
				return sdk.FormatInvariant(
					types.ModuleName, "match-consistency",
					fmt.Sprintf("complete order %d has no matched bid", order.Id),
				), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "match-consistency", "matches consistent"), false
	}
}
