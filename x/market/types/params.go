package types

import (
	"fmt"
)

// Params holds the market module's configuration.
type Params struct {
	// MinLeaseBlocks is the shortest order duration accepted.
	MinLeaseBlocks uint64 `json:"min_lease_blocks"`
	// MaxLeaseBlocks is the longest order duration accepted.
	MaxLeaseBlocks uint64 `json:"max_lease_blocks"`
}

// DefaultParams returns the default market parameters.
func DefaultParams() Params {
	return Params{
		MinLeaseBlocks: 1,
		MaxLeaseBlocks: 10_000_000,
	}
}

func (p Params) Validate() error {
	if p.MinLeaseBlocks == 0 {
		return fmt.Errorf("min lease blocks must be positive")
	}
	if p.MaxLeaseBlocks < p.MinLeaseBlocks {
		return fmt.Errorf("max lease blocks %d below min %d", p.MaxLeaseBlocks, p.MinLeaseBlocks)
	}
	return nil
}
