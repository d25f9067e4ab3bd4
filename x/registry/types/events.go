package types

// Event types for the registry module
const (
	EventTypeProviderRegistered   = "provider_registered"
	EventTypeProviderTrustUpdated = "provider_trust_updated"
	EventTypeProviderStatusSet    = "provider_status_set"
)

// Event attribute keys
const (
	AttributeKeyProviderID = "provider_id"
	AttributeKeyAddress    = "address"
	AttributeKeyTrustLevel = "trust_level"
	AttributeKeyStatus     = "status"
)
