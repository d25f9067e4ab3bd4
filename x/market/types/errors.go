package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Market module sentinel errors
var (
	ErrOrderNotFound      = sdkerrors.Register(ModuleName, 2, "order not found")
	ErrBidNotFound        = sdkerrors.Register(ModuleName, 3, "bid not found")
	ErrLeaseNotFound      = sdkerrors.Register(ModuleName, 4, "lease not found")
	ErrInvalidOrder       = sdkerrors.Register(ModuleName, 5, "invalid order")
	ErrInvalidBid         = sdkerrors.Register(ModuleName, 6, "bid price exceeds order max price")
	ErrOrderNotActive     = sdkerrors.Register(ModuleName, 7, "order is not active")
	ErrBidNotActive       = sdkerrors.Register(ModuleName, 8, "bid is not active")
	ErrLeaseNotActive     = sdkerrors.Register(ModuleName, 9, "lease is not active")
	ErrProviderIneligible = sdkerrors.Register(ModuleName, 10, "provider may not bid on this order")
	ErrStorageFailed      = sdkerrors.Register(ModuleName, 11, "storage operation failed")
	ErrSettlementFailed   = sdkerrors.Register(ModuleName, 12, "settlement failed")
)
