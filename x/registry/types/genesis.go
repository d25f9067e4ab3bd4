package types

import (
	"fmt"
)

// GenesisState is the registry module's exported state.
type GenesisState struct {
	Providers     []Provider `json:"providers"`
	ProviderCount uint64     `json:"provider_count"`
}

// DefaultGenesis returns the default (empty) genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	seenIDs := make(map[uint64]struct{}, len(gs.Providers))
	activeAddrs := make(map[string]struct{}, len(gs.Providers))
	for _, p := range gs.Providers {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("provider %d: %w", p.Id, err)
		}
		if p.Id > gs.ProviderCount {
			return fmt.Errorf("provider id %d exceeds provider count %d", p.Id, gs.ProviderCount)
		}
		if _, ok := seenIDs[p.Id]; ok {
			return fmt.Errorf("duplicate provider id %d", p.Id)
		}
		seenIDs[p.Id] = struct{}{}
		if p.Status != ProviderStatusDeactivated {
			if _, ok := activeAddrs[p.Address]; ok {
				return fmt.Errorf("address %s has more than one live provider record", p.Address)
			}
			activeAddrs[p.Address] = struct{}{}
		}
	}
	return nil
}
