package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/escrow/types"
)

// RegisterInvariants registers all escrow module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "non-negative-balances",
		NonNegativeBalancesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "earnings-identity",
		EarningsIdentityInvariant(k))
	ir.RegisterRoute(types.ModuleName, "custody-backing",
		CustodyBackingInvariant(k))
}

// AllInvariants runs all invariants of the escrow module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := NonNegativeBalancesInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = EarningsIdentityInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return CustodyBackingInvariant(k)(ctx)
	}
}

// NonNegativeBalancesInvariant checks that no tenant balance or earnings
// quantity has gone negative.
func NonNegativeBalancesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		broken := false

		err := k.IterateTenantAccounts(ctx, func(tenant sdk.AccAddress, denom string, account types.TenantAccount) (bool, error) {
			if account.LockedBalance.IsNegative() || account.UnlockedBalance.IsNegative() {
				broken = true
				msg = fmt.Sprintf("tenant %s has negative balance in %s", tenant, denom)
				return true, nil
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "non-negative-balances", err.Error()), true
		}
		if !broken {
			err = k.IterateProviderEarnings(ctx, func(providerID uint64, denom string, earnings types.ProviderEarnings) (bool, error) {
				if earnings.Earned.IsNegative() || earnings.Withdrawn.IsNegative() || earnings.Balance.IsNegative() {
					broken = true
					msg = fmt.Sprintf("provider %d has negative earnings field in %s", providerID, denom)
					return true, nil
				}
				return false, nil
			})
			if err != nil {
				return sdk.FormatInvariant(types.ModuleName, "non-negative-balances", err.Error()), true
			}
		}
		if broken {
			return sdk.FormatInvariant(types.ModuleName, "non-negative-balances", msg), true
		}
		return sdk.FormatInvariant(types.ModuleName, "non-negative-balances", "all balances non-negative"), false
	}
}

// EarningsIdentityInvariant checks balance == earned - withdrawn on every
// earnings record.
func EarningsIdentityInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		broken := false

		err := k.IterateProviderEarnings(ctx, func(providerID uint64, denom string, earnings types.ProviderEarnings) (bool, error) {
			if !earnings.Balance.Equal(earnings.Earned.Sub(earnings.Withdrawn)) {
				broken = true
				msg = fmt.Sprintf("provider %d in %s: balance %s != earned %s - withdrawn %s",
					providerID, denom, earnings.Balance, earnings.Earned, earnings.Withdrawn)
				return true, nil
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "earnings-identity", err.Error()), true
		}
		if broken {
			return sdk.FormatInvariant(types.ModuleName, "earnings-identity", msg), true
		}
		return sdk.FormatInvariant(types.ModuleName, "earnings-identity", "earnings identity holds"), false
	}
}

// CustodyBackingInvariant checks that, per denom, the module custody account
// holds at least the sum of tenant balances plus claimable earnings.
func CustodyBackingInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		owed := make(map[string]sdk.Coin)

		err := k.IterateTenantAccounts(ctx, func(tenant sdk.AccAddress, denom string, account types.TenantAccount) (bool, error) {
			coin, ok := owed[denom]
			if !ok {
				coin = sdk.NewCoin(denom, account.Total())
			} else {
				coin = coin.AddAmount(account.Total())
			}
			owed[denom] = coin
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "custody-backing", err.Error()), true
		}

		err = k.IterateProviderEarnings(ctx, func(providerID uint64, denom string, earnings types.ProviderEarnings) (bool, error) {
			coin, ok := owed[denom]
			if !ok {
				coin = sdk.NewCoin(denom, earnings.Balance)
			} else {
				coin = coin.AddAmount(earnings.Balance)
			}
			owed[denom] = coin
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "custody-backing", err.Error()), true
		}

		custody := CustodyAddress()
		for denom, coin := range owed {
			held := k.bankKeeper.GetBalance(ctx, custody, denom)
			if held.Amount.LT(coin.Amount) {
				return sdk.FormatInvariant(
					types.ModuleName, "custody-backing",
					fmt.Sprintf("custody holds %s but owes %s in %s", held.Amount, coin.Amount, denom),
				), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "custody-backing", "custody fully backs liabilities"), false
	}
}
