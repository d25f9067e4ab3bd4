package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Escrow module sentinel errors
var (
	ErrInvalidAmount       = sdkerrors.Register(ModuleName, 2, "amount must be positive")
	ErrInsufficientBalance = sdkerrors.Register(ModuleName, 3, "insufficient balance")
	ErrTenantNotFound      = sdkerrors.Register(ModuleName, 4, "tenant balance not found")
	ErrEarningsNotFound    = sdkerrors.Register(ModuleName, 5, "provider has no earnings in denom")
	ErrNotProvider         = sdkerrors.Register(ModuleName, 6, "caller is not a registered provider")
	ErrNothingToWithdraw   = sdkerrors.Register(ModuleName, 7, "no claimable earnings")
	ErrTransferFailed      = sdkerrors.Register(ModuleName, 8, "token transfer failed")
	ErrDepositBelowMinimum = sdkerrors.Register(ModuleName, 9, "deposit below minimum")
	ErrStorageFailed       = sdkerrors.Register(ModuleName, 10, "storage operation failed")
	ErrInvalidDenom        = sdkerrors.Register(ModuleName, 11, "invalid denom")
)
