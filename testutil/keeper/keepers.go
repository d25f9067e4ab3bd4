package keeper

import (
	"testing"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"
	"github.com/stretchr/testify/require"

	escrowkeeper "github.com/vela-compute/vela/x/escrow/keeper"
	escrowtypes "github.com/vela-compute/vela/x/escrow/types"
	marketkeeper "github.com/vela-compute/vela/x/market/keeper"
	markettypes "github.com/vela-compute/vela/x/market/types"
	registrykeeper "github.com/vela-compute/vela/x/registry/keeper"
	registrytypes "github.com/vela-compute/vela/x/registry/types"
)

// TestKeepers bundles the marketplace keepers wired against an in-memory
// multistore with a real bank keeper as the token ledger.
type TestKeepers struct {
	Registry  *registrykeeper.Keeper
	Escrow    *escrowkeeper.Keeper
	Market    *marketkeeper.Keeper
	Bank      bankkeeper.Keeper
	Authority sdk.AccAddress
}

// MarketplaceKeepers creates the full keeper set for tests.
func MarketplaceKeepers(t testing.TB) (TestKeepers, sdk.Context) {
	registryStoreKey := storetypes.NewKVStoreKey(registrytypes.StoreKey)
	escrowStoreKey := storetypes.NewKVStoreKey(escrowtypes.StoreKey)
	marketStoreKey := storetypes.NewKVStoreKey(markettypes.StoreKey)
	authStoreKey := storetypes.NewKVStoreKey(authtypes.StoreKey)
	bankStoreKey := storetypes.NewKVStoreKey(banktypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(registryStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(escrowStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(marketStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(authStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)
	authority := authtypes.NewModuleAddress(govtypes.ModuleName)

	maccPerms := map[string][]string{
		minttypes.ModuleName:   {authtypes.Minter},
		escrowtypes.ModuleName: nil,
	}

	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(authStoreKey),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		authority.String(),
	)

	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(bankStoreKey),
		accountKeeper,
		map[string]bool{},
		authority.String(),
		log.NewNopLogger(),
	)

	registryKeeper := registrykeeper.NewKeeper(registryStoreKey, authority.String())
	escrowKeeper := escrowkeeper.NewKeeper(escrowStoreKey, bankKeeper, registryKeeper)
	marketKeeper := marketkeeper.NewKeeper(marketStoreKey, escrowKeeper, registryKeeper)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	keepers := TestKeepers{
		Registry:  registryKeeper,
		Escrow:    escrowKeeper,
		Market:    marketKeeper,
		Bank:      bankKeeper,
		Authority: authority,
	}
	return keepers, ctx
}

// FundAccount mints coins and delivers them to addr through the mint module.
func FundAccount(t testing.TB, ctx sdk.Context, bank bankkeeper.Keeper, addr sdk.AccAddress, denom string, amount sdkmath.Int) {
	t.Helper()
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	require.NoError(t, bank.MintCoins(ctx, minttypes.ModuleName, coins))
	require.NoError(t, bank.SendCoinsFromModuleToAccount(ctx, minttypes.ModuleName, addr, coins))
}
