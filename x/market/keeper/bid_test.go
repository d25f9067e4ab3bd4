package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vela-compute/vela/testutil/keeper"
	"github.com/vela-compute/vela/x/market/types"
	registrytypes "github.com/vela-compute/vela/x/registry/types"
)

// TestPlaceBid_Valid tests placing a bid on an open order
func TestPlaceBid_Valid(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)
	providerID, _ := registerProvider(t, keepers, ctx)

	bidID, err := k.PlaceBid(ctx, orderID, providerID, math.NewInt(70000))
	require.NoError(t, err)
	require.Equal(t, uint64(1), bidID)

	bid, err := k.GetBid(ctx, bidID)
	require.NoError(t, err)
	require.Equal(t, orderID, bid.OrderId)
	require.Equal(t, providerID, bid.ProviderId)
	require.Equal(t, math.NewInt(70000), bid.Price)
	require.Equal(t, types.BidStateActive, bid.State)

	bids := k.BidsByOrder(ctx, orderID)
	require.Len(t, bids, 1)
	require.Equal(t, bidID, bids[0].Id)
}

// TestPlaceBid_ExceedsMaxPrice tests rejection of a bid above the ceiling
func TestPlaceBid_ExceedsMaxPrice(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)
	providerID, _ := registerProvider(t, keepers, ctx)

	_, err := k.PlaceBid(ctx, orderID, providerID, math.NewInt(85000))
	require.ErrorIs(t, err, types.ErrInvalidBid)

	// A bid exactly at the ceiling is fine.
	_, err = k.PlaceBid(ctx, orderID, providerID, math.NewInt(80000))
	require.NoError(t, err)
}

// TestPlaceBid_InvalidPrice tests rejection of non-positive bid prices
func TestPlaceBid_InvalidPrice(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)
	providerID, _ := registerProvider(t, keepers, ctx)

	_, err := keepers.Market.PlaceBid(ctx, orderID, providerID, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidBid)
}

// TestPlaceBid_ClosedOrder tests that closed orders take no bids
func TestPlaceBid_ClosedOrder(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)
	providerID, _ := registerProvider(t, keepers, ctx)

	require.NoError(t, k.CloseOrder(ctx, orderID))

	_, err := k.PlaceBid(ctx, orderID, providerID, math.NewInt(70000))
	require.ErrorIs(t, err, types.ErrOrderNotActive)
}

// TestPlaceBid_UnknownOrder tests bidding on a nonexistent order
func TestPlaceBid_UnknownOrder(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	providerID, _ := registerProvider(t, keepers, ctx)

	_, err := keepers.Market.PlaceBid(ctx, 9, providerID, math.NewInt(10))
	require.ErrorIs(t, err, types.ErrOrderNotFound)
}

// TestPlaceBid_UnknownProvider tests bidding by an unregistered provider
func TestPlaceBid_UnknownProvider(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)

	_, err := keepers.Market.PlaceBid(ctx, orderID, 9, math.NewInt(10))
	require.ErrorIs(t, err, types.ErrProviderIneligible)
}

// TestPlaceBid_ProviderNotAccepting tests bidding while suspended
func TestPlaceBid_ProviderNotAccepting(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)
	providerID, _ := registerProvider(t, keepers, ctx)
	suspend(t, keepers, ctx, providerID)

	_, err := keepers.Market.PlaceBid(ctx, orderID, providerID, math.NewInt(10))
	require.ErrorIs(t, err, types.ErrProviderIneligible)
}

// TestPlaceBid_TrustScreening tests the order's trust level requirement
func TestPlaceBid_TrustScreening(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	owner := testAddr()

	orderID, err := k.CreateOrder(ctx, owner, testDenom, math.NewInt(80000), 100, 1, "gpu-small",
		[]registrytypes.TrustLevel{registrytypes.TrustLevelTwo})
	require.NoError(t, err)

	// A new provider starts at the weakest trust level and is screened out.
	providerID, _ := registerProvider(t, keepers, ctx)
	_, err = k.PlaceBid(ctx, orderID, providerID, math.NewInt(100))
	require.ErrorIs(t, err, types.ErrProviderIneligible)

	// Raising the provider to a stronger level than required clears the bar.
	require.NoError(t, keepers.Registry.SetTrustLevel(ctx, keepers.Authority, providerID, registrytypes.TrustLevelOne))
	_, err = k.PlaceBid(ctx, orderID, providerID, math.NewInt(100))
	require.NoError(t, err)
}

// TestCancelBid tests canceling an open bid
func TestCancelBid(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)
	providerID, _ := registerProvider(t, keepers, ctx)

	bidID, err := k.PlaceBid(ctx, orderID, providerID, math.NewInt(100))
	require.NoError(t, err)

	require.NoError(t, k.CancelBid(ctx, bidID))

	bid, err := k.GetBid(ctx, bidID)
	require.NoError(t, err)
	require.Equal(t, types.BidStateCanceled, bid.State)

	// Canceled bids stay canceled.
	require.ErrorIs(t, k.CancelBid(ctx, bidID), types.ErrBidNotActive)
}

// TestAcceptBid tests the matching flow: max_price 80000, a bid of 85000 is
// rejected, a bid of 70000 wins and completes the order at the settled price
func TestAcceptBid(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	ctx = ctx.WithBlockHeight(50)

	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)
	providerID, _ := registerProvider(t, keepers, ctx)

	_, err := k.PlaceBid(ctx, orderID, providerID, math.NewInt(85000))
	require.ErrorIs(t, err, types.ErrInvalidBid)

	bidID, err := k.PlaceBid(ctx, orderID, providerID, math.NewInt(70000))
	require.NoError(t, err)

	lease, err := k.AcceptBid(ctx, bidID)
	require.NoError(t, err)

	order, err := k.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, types.OrderStateComplete, order.State)
	require.Equal(t, math.NewInt(70000), order.MaxPrice)

	bid, err := k.GetBid(ctx, bidID)
	require.NoError(t, err)
	require.Equal(t, types.BidStateMatched, bid.State)

	require.Equal(t, types.LeaseStateActive, lease.State)
	require.Equal(t, orderID, lease.OrderId)
	require.Equal(t, providerID, lease.ProviderId)
	require.Equal(t, int64(50), lease.StartBlock)
	require.Equal(t, int64(150), lease.EndBlock)

	// The match lands in the provider's order history.
	require.Equal(t, []uint64{orderID}, k.ProviderOrders(ctx, providerID))
}

// TestAcceptBid_CancelsSiblings tests that losing bids are canceled
func TestAcceptBid_CancelsSiblings(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)
	winnerID, _ := registerProvider(t, keepers, ctx)
	loserID, _ := registerProvider(t, keepers, ctx)

	winningBid, err := k.PlaceBid(ctx, orderID, winnerID, math.NewInt(60000))
	require.NoError(t, err)
	losingBid, err := k.PlaceBid(ctx, orderID, loserID, math.NewInt(65000))
	require.NoError(t, err)

	_, err = k.AcceptBid(ctx, winningBid)
	require.NoError(t, err)

	loser, err := k.GetBid(ctx, losingBid)
	require.NoError(t, err)
	require.Equal(t, types.BidStateCanceled, loser.State)

	// The losing bid cannot be accepted afterwards.
	_, err = k.AcceptBid(ctx, losingBid)
	require.ErrorIs(t, err, types.ErrBidNotActive)
}

// TestAcceptBid_OrderNotActive tests accepting a bid on a closed order
func TestAcceptBid_OrderNotActive(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)
	providerID, _ := registerProvider(t, keepers, ctx)

	bidID, err := k.PlaceBid(ctx, orderID, providerID, math.NewInt(100))
	require.NoError(t, err)

	require.NoError(t, k.CloseOrder(ctx, orderID))

	// Closing already canceled the bid.
	_, err = k.AcceptBid(ctx, bidID)
	require.ErrorIs(t, err, types.ErrBidNotActive)
}

// TestAcceptBid_AlreadyMatched tests double acceptance
func TestAcceptBid_AlreadyMatched(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	orderID, _ := createOrder(t, keepers, ctx, 80000, 100)
	providerID, _ := registerProvider(t, keepers, ctx)

	bidID, err := k.PlaceBid(ctx, orderID, providerID, math.NewInt(100))
	require.NoError(t, err)

	_, err = k.AcceptBid(ctx, bidID)
	require.NoError(t, err)

	_, err = k.AcceptBid(ctx, bidID)
	require.ErrorIs(t, err, types.ErrBidNotActive)
}
