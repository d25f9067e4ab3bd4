package types

// Event types for the escrow module
const (
	EventTypeDeposit           = "escrow_deposit"
	EventTypeWithdraw          = "escrow_withdraw"
	EventTypeLock              = "escrow_lock"
	EventTypeUnlock            = "escrow_unlock"
	EventTypeSettle            = "escrow_settle"
	EventTypeEarningsWithdrawn = "escrow_earnings_withdrawn"
)

// Event attribute keys
const (
	AttributeKeyTenant     = "tenant"
	AttributeKeyRecipient  = "recipient"
	AttributeKeyProviderID = "provider_id"
	AttributeKeyDenom      = "denom"
	AttributeKeyAmount     = "amount"
)
