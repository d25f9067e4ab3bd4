package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vela-compute/vela/testutil/keeper"
)

const testDenom = "uvela"

// testAddr returns a fresh random account address.
func testAddr() sdk.AccAddress {
	return sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())
}

// fundedTenant creates an address holding amount of the test denom.
func fundedTenant(t testing.TB, keepers keepertest.TestKeepers, ctx sdk.Context, amount int64) sdk.AccAddress {
	t.Helper()
	addr := testAddr()
	keepertest.FundAccount(t, ctx, keepers.Bank, addr, testDenom, math.NewInt(amount))
	return addr
}

// registerProvider registers addr in the registry and returns its id.
func registerProvider(t testing.TB, keepers keepertest.TestKeepers, ctx sdk.Context, addr sdk.AccAddress) uint64 {
	t.Helper()
	id, err := keepers.Registry.AddProvider(ctx, addr)
	require.NoError(t, err)
	return id
}
