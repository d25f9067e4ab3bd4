package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	registrytypes "github.com/vela-compute/vela/x/registry/types"
)

// BankKeeper is the token ledger the escrow moves funds through. The module
// account is the custody account for all escrowed funds.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// RegistryKeeper resolves provider identities. Injected so escrow tests can
// substitute a fake registry.
type RegistryKeeper interface {
	GetProvider(ctx context.Context, id uint64) (registrytypes.Provider, error)
	GetProviderByAddress(ctx context.Context, address sdk.AccAddress) (uint64, registrytypes.Provider, error)
}
