package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vela-compute/vela/testutil/keeper"
	registrytypes "github.com/vela-compute/vela/x/registry/types"
)

const testDenom = "uvela"

// testAddr returns a fresh random account address.
func testAddr() sdk.AccAddress {
	return sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())
}

// registerProvider registers a fresh provider address and returns both.
func registerProvider(t testing.TB, keepers keepertest.TestKeepers, ctx sdk.Context) (uint64, sdk.AccAddress) {
	t.Helper()
	addr := testAddr()
	id, err := keepers.Registry.AddProvider(ctx, addr)
	require.NoError(t, err)
	return id, addr
}

// createOrder opens an order owned by a fresh address with the given price
// ceiling and duration, open to all trust levels.
func createOrder(t testing.TB, keepers keepertest.TestKeepers, ctx sdk.Context, maxPrice int64, numBlocks uint64) (uint64, sdk.AccAddress) {
	t.Helper()
	owner := testAddr()
	id, err := keepers.Market.CreateOrder(ctx, owner, testDenom, math.NewInt(maxPrice), numBlocks, 1, "gpu-small", nil)
	require.NoError(t, err)
	return id, owner
}

// escrowForMatch funds owner and locks amount in escrow so a match can settle.
func escrowForMatch(t testing.TB, keepers keepertest.TestKeepers, ctx sdk.Context, owner sdk.AccAddress, amount int64) {
	t.Helper()
	keepertest.FundAccount(t, ctx, keepers.Bank, owner, testDenom, math.NewInt(amount))
	require.NoError(t, keepers.Escrow.Deposit(ctx, testDenom, owner, math.NewInt(amount)))
	require.NoError(t, keepers.Escrow.Lock(ctx, testDenom, owner, math.NewInt(amount)))
}

// suspend moves a provider out of an accepting status.
func suspend(t testing.TB, keepers keepertest.TestKeepers, ctx sdk.Context, providerID uint64) {
	t.Helper()
	require.NoError(t, keepers.Registry.SetProviderStatus(ctx, keepers.Authority, providerID, registrytypes.ProviderStatusSuspended))
}
