package types

import (
	"fmt"
)

// TrustLevel is an ordinal reputation rank for a provider. One is the most
// trusted rank, Five the least. New providers always start at TrustLevelFive.
type TrustLevel uint8

const (
	TrustLevelOne TrustLevel = iota + 1
	TrustLevelTwo
	TrustLevelThree
	TrustLevelFour
	TrustLevelFive
)

// DefaultTrustLevel is assigned to every newly registered provider.
const DefaultTrustLevel = TrustLevelFive

func (t TrustLevel) Validate() error {
	if t < TrustLevelOne || t > TrustLevelFive {
		return fmt.Errorf("invalid trust level %d", t)
	}
	return nil
}

func (t TrustLevel) String() string {
	switch t {
	case TrustLevelOne:
		return "one"
	case TrustLevelTwo:
		return "two"
	case TrustLevelThree:
		return "three"
	case TrustLevelFour:
		return "four"
	case TrustLevelFive:
		return "five"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// AtLeast reports whether t is at least as trusted as other.
// Lower ordinal means higher trust.
func (t TrustLevel) AtLeast(other TrustLevel) bool {
	return t <= other
}

// ProviderStatus is the operational status of a provider.
type ProviderStatus uint8

const (
	ProviderStatusRegistered ProviderStatus = iota + 1
	ProviderStatusActive
	ProviderStatusMaintenance
	ProviderStatusSuspended
	ProviderStatusDeactivated
)

func (s ProviderStatus) Validate() error {
	if s < ProviderStatusRegistered || s > ProviderStatusDeactivated {
		return fmt.Errorf("invalid provider status %d", s)
	}
	return nil
}

func (s ProviderStatus) String() string {
	switch s {
	case ProviderStatusRegistered:
		return "registered"
	case ProviderStatusActive:
		return "active"
	case ProviderStatusMaintenance:
		return "maintenance"
	case ProviderStatusSuspended:
		return "suspended"
	case ProviderStatusDeactivated:
		return "deactivated"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// CanTransitionTo reports whether a status change from s to next is legal.
// Deactivated is terminal; a deactivated address re-registers under a fresh id
// instead of being revived in place.
func (s ProviderStatus) CanTransitionTo(next ProviderStatus) bool {
	if next.Validate() != nil {
		return false
	}
	if s == ProviderStatusDeactivated {
		return false
	}
	return s != next
}

// Accepting reports whether a provider in this status may take on new work.
func (s ProviderStatus) Accepting() bool {
	return s == ProviderStatusRegistered || s == ProviderStatusActive
}

// Provider is the registry record for a compute provider.
type Provider struct {
	Id         uint64         `json:"id"`
	Address    string         `json:"address"`
	TrustLevel TrustLevel     `json:"trust_level"`
	Status     ProviderStatus `json:"status"`
}

// NewProvider returns a freshly registered provider record with the default
// trust level and Registered status.
func NewProvider(id uint64, address string) Provider {
	return Provider{
		Id:         id,
		Address:    address,
		TrustLevel: DefaultTrustLevel,
		Status:     ProviderStatusRegistered,
	}
}

func (p Provider) Validate() error {
	if p.Id == 0 {
		return fmt.Errorf("provider id must be positive")
	}
	if p.Address == "" {
		return fmt.Errorf("provider address must not be empty")
	}
	if err := p.TrustLevel.Validate(); err != nil {
		return err
	}
	return p.Status.Validate()
}
