package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params holds the escrow module's configuration.
type Params struct {
	// MinDeposit is the smallest amount a single deposit may credit, a spam
	// floor for tenant account creation.
	MinDeposit math.Int `json:"min_deposit"`
}

// DefaultParams returns the default escrow parameters.
func DefaultParams() Params {
	return Params{
		MinDeposit: math.NewInt(1),
	}
}

func (p Params) Validate() error {
	if p.MinDeposit.IsNil() || !p.MinDeposit.IsPositive() {
		return fmt.Errorf("min deposit must be positive, got %v", p.MinDeposit)
	}
	return nil
}
