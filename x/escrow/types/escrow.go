package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// TenantAccount tracks a tenant's escrowed funds for one denom. Unlocked funds
// may be withdrawn or locked; locked funds are earmarked for in-progress
// commitments and can only be unlocked or settled to a provider.
type TenantAccount struct {
	LockedBalance   math.Int `json:"locked_balance"`
	UnlockedBalance math.Int `json:"unlocked_balance"`
}

// NewTenantAccount returns an empty tenant account.
func NewTenantAccount() TenantAccount {
	return TenantAccount{
		LockedBalance:   math.ZeroInt(),
		UnlockedBalance: math.ZeroInt(),
	}
}

// Total returns locked + unlocked.
func (t TenantAccount) Total() math.Int {
	return t.LockedBalance.Add(t.UnlockedBalance)
}

func (t TenantAccount) Validate() error {
	if t.LockedBalance.IsNil() || t.UnlockedBalance.IsNil() {
		return fmt.Errorf("tenant account has nil balance")
	}
	if t.LockedBalance.IsNegative() {
		return fmt.Errorf("locked balance %s is negative", t.LockedBalance)
	}
	if t.UnlockedBalance.IsNegative() {
		return fmt.Errorf("unlocked balance %s is negative", t.UnlockedBalance)
	}
	return nil
}

// ProviderEarnings tracks what a provider has been credited through settlement
// for one denom. Earned and Withdrawn are monotone cumulative totals; Balance
// is the currently claimable amount and always equals Earned - Withdrawn.
type ProviderEarnings struct {
	Earned    math.Int `json:"earned"`
	Withdrawn math.Int `json:"withdrawn"`
	Balance   math.Int `json:"balance"`
}

// NewProviderEarnings returns a zeroed earnings record.
func NewProviderEarnings() ProviderEarnings {
	return ProviderEarnings{
		Earned:    math.ZeroInt(),
		Withdrawn: math.ZeroInt(),
		Balance:   math.ZeroInt(),
	}
}

func (p ProviderEarnings) Validate() error {
	if p.Earned.IsNil() || p.Withdrawn.IsNil() || p.Balance.IsNil() {
		return fmt.Errorf("provider earnings has nil field")
	}
	if p.Earned.IsNegative() || p.Withdrawn.IsNegative() || p.Balance.IsNegative() {
		return fmt.Errorf("provider earnings has negative field")
	}
	if !p.Balance.Equal(p.Earned.Sub(p.Withdrawn)) {
		return fmt.Errorf("balance %s != earned %s - withdrawn %s", p.Balance, p.Earned, p.Withdrawn)
	}
	return nil
}
