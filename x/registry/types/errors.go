package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Registry module sentinel errors
var (
	ErrProviderNotFound  = sdkerrors.Register(ModuleName, 2, "provider not found")
	ErrUnauthorized      = sdkerrors.Register(ModuleName, 3, "unauthorized operation")
	ErrInvalidTrustLevel = sdkerrors.Register(ModuleName, 4, "invalid trust level")
	ErrInvalidStatus     = sdkerrors.Register(ModuleName, 5, "invalid provider status")
	ErrIllegalTransition = sdkerrors.Register(ModuleName, 6, "illegal provider status transition")
	ErrInvalidAddress    = sdkerrors.Register(ModuleName, 7, "invalid provider address")
	ErrStorageFailed     = sdkerrors.Register(ModuleName, 8, "storage operation failed")
)
