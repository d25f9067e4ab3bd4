package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	registrytypes "github.com/vela-compute/vela/x/registry/types"
)

// EscrowKeeper is the settlement capability the market uses when a match is
// finalized atomically.
type EscrowKeeper interface {
	Settle(ctx context.Context, denom string, tenant sdk.AccAddress, amount math.Int, providerID uint64) error
}

// RegistryKeeper screens bidding providers.
type RegistryKeeper interface {
	GetProvider(ctx context.Context, id uint64) (registrytypes.Provider, error)
}
