package types

import (
	"fmt"
)

// TenantBalanceRecord pairs a tenant account with its store coordinates for
// genesis export.
type TenantBalanceRecord struct {
	Tenant  string        `json:"tenant"`
	Denom   string        `json:"denom"`
	Account TenantAccount `json:"account"`
}

// ProviderEarningsRecord pairs an earnings record with its store coordinates.
type ProviderEarningsRecord struct {
	ProviderId uint64           `json:"provider_id"`
	Denom      string           `json:"denom"`
	Earnings   ProviderEarnings `json:"earnings"`
}

// GenesisState is the escrow module's exported state.
type GenesisState struct {
	Params   Params                   `json:"params"`
	Tenants  []TenantBalanceRecord    `json:"tenants"`
	Earnings []ProviderEarningsRecord `json:"earnings"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Params: DefaultParams()}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(gs.Tenants))
	for _, rec := range gs.Tenants {
		if rec.Tenant == "" || rec.Denom == "" {
			return fmt.Errorf("tenant record missing tenant or denom")
		}
		key := rec.Tenant + "/" + rec.Denom
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate tenant record %s", key)
		}
		seen[key] = struct{}{}
		if err := rec.Account.Validate(); err != nil {
			return fmt.Errorf("tenant %s: %w", key, err)
		}
	}
	seenEarnings := make(map[string]struct{}, len(gs.Earnings))
	for _, rec := range gs.Earnings {
		if rec.ProviderId == 0 || rec.Denom == "" {
			return fmt.Errorf("earnings record missing provider id or denom")
		}
		key := fmt.Sprintf("%d/%s", rec.ProviderId, rec.Denom)
		if _, ok := seenEarnings[key]; ok {
			return fmt.Errorf("duplicate earnings record %s", key)
		}
		seenEarnings[key] = struct{}{}
		if err := rec.Earnings.Validate(); err != nil {
			return fmt.Errorf("earnings %s: %w", key, err)
		}
	}
	return nil
}
