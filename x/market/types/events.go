package types

// Event types for the market module
const (
	EventTypeOrderCreated = "order_created"
	EventTypeOrderClosed  = "order_closed"
	EventTypeBidPlaced    = "bid_placed"
	EventTypeBidCanceled  = "bid_canceled"
	EventTypeBidAccepted  = "bid_accepted"
	EventTypeLeaseCreated = "lease_created"
	EventTypeLeaseUpdated = "lease_updated"
	EventTypeOrderMatched = "order_matched"
)

// Event attribute keys
const (
	AttributeKeyOrderID    = "order_id"
	AttributeKeyBidID      = "bid_id"
	AttributeKeyLeaseID    = "lease_id"
	AttributeKeyProviderID = "provider_id"
	AttributeKeyOwner      = "owner"
	AttributeKeyPrice      = "price"
	AttributeKeyState      = "state"
	AttributeKeyStartBlock = "start_block"
	AttributeKeyEndBlock   = "end_block"
	AttributeKeyContainer  = "container"
)
