package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vela-compute/vela/testutil/keeper"
	"github.com/vela-compute/vela/x/market/types"
)

// matchedLease runs a full order-bid-accept flow and returns the lease.
func matchedLease(t *testing.T, keepers keepertest.TestKeepers, ctx sdk.Context, numBlocks uint64) types.Lease {
	t.Helper()
	orderID, _ := createOrder(t, keepers, ctx, 1000, numBlocks)
	providerID, _ := registerProvider(t, keepers, ctx)
	bidID, err := keepers.Market.PlaceBid(ctx, orderID, providerID, math.NewInt(500))
	require.NoError(t, err)
	lease, err := keepers.Market.AcceptBid(ctx, bidID)
	require.NoError(t, err)
	return lease
}

// TestSetLeaseContainer tests attaching a workload reference
func TestSetLeaseContainer(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	lease := matchedLease(t, keepers, ctx, 100)

	require.NoError(t, k.SetLeaseContainer(ctx, lease.Id, "docker://sha256:abc123"))

	stored, err := k.GetLease(ctx, lease.Id)
	require.NoError(t, err)
	require.Equal(t, "docker://sha256:abc123", stored.Container)
}

// TestSetLeaseContainer_NotActive tests updating a closed lease
func TestSetLeaseContainer_NotActive(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	lease := matchedLease(t, keepers, ctx, 100)

	require.NoError(t, k.CloseLease(ctx, lease.Id))

	err := k.SetLeaseContainer(ctx, lease.Id, "docker://x")
	require.ErrorIs(t, err, types.ErrLeaseNotActive)
}

// TestCloseLease_Early tests that closing before the end block is a
// cancellation
func TestCloseLease_Early(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	lease := matchedLease(t, keepers, ctx, 100)

	require.NoError(t, k.CloseLease(ctx, lease.Id))

	stored, err := k.GetLease(ctx, lease.Id)
	require.NoError(t, err)
	require.Equal(t, types.LeaseStateCanceled, stored.State)
}

// TestCloseLease_AtEnd tests that a lease reaching its end block completes
func TestCloseLease_AtEnd(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	lease := matchedLease(t, keepers, ctx, 100)

	ctx = ctx.WithBlockHeight(lease.EndBlock)
	require.NoError(t, k.CloseLease(ctx, lease.Id))

	stored, err := k.GetLease(ctx, lease.Id)
	require.NoError(t, err)
	require.Equal(t, types.LeaseStateCompleted, stored.State)
}

// TestCloseLease_NotActive tests closing twice
func TestCloseLease_NotActive(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	lease := matchedLease(t, keepers, ctx, 100)

	require.NoError(t, k.CloseLease(ctx, lease.Id))
	require.ErrorIs(t, k.CloseLease(ctx, lease.Id), types.ErrLeaseNotActive)
}

// TestLeaseCounter tests that lease ids advance independently of order ids
func TestLeaseCounter(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market

	// An extra unmatched order keeps the order counter ahead of the lease
	// counter.
	createOrder(t, keepers, ctx, 1000, 100)

	first := matchedLease(t, keepers, ctx, 100)
	second := matchedLease(t, keepers, ctx, 100)

	require.Equal(t, uint64(1), first.Id)
	require.Equal(t, uint64(2), second.Id)
	require.Equal(t, uint64(2), k.GetLeaseCount(ctx))
	require.Equal(t, uint64(3), k.GetOrderCount(ctx))
}

// TestLeasesByOrder tests the order-to-lease index
func TestLeasesByOrder(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)
	k := keepers.Market
	lease := matchedLease(t, keepers, ctx, 100)

	leases := k.LeasesByOrder(ctx, lease.OrderId)
	require.Len(t, leases, 1)
	require.Equal(t, lease.Id, leases[0].Id)

	require.Empty(t, k.LeasesByOrder(ctx, 999))
}

// TestGetLease_NotFound tests the lookup error for unknown lease ids
func TestGetLease_NotFound(t *testing.T) {
	keepers, ctx := keepertest.MarketplaceKeepers(t)

	_, err := keepers.Market.GetLease(ctx, 9)
	require.ErrorIs(t, err, types.ErrLeaseNotFound)
}
