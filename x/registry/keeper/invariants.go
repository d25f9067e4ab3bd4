package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/registry/types"
)

// RegisterInvariants registers all registry module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "reverse-index", ReverseIndexInvariant(k))
}

// AllInvariants runs all invariants of the registry module
func AllInvariants(k Keeper) sdk.Invariant {
	return ReverseIndexInvariant(k)
}

// ReverseIndexInvariant checks that every live provider record's address maps
// back to its own id, and that no record carries an id beyond the counter.
func ReverseIndexInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		count := k.GetProviderCount(ctx)
		for _, provider := range k.ListProviders(ctx) {
			if provider.Id > count {
				return sdk.FormatInvariant(
					types.ModuleName, "reverse-index",
					fmt.Sprintf("provider id %d exceeds counter %d", provider.Id, count),
				), true
			}
			if provider.Status == types.ProviderStatusDeactivated {
				continue
			}
			id, found := k.getProviderIDByAddress(ctx, provider.Address)
			if !found || id != provider.Id {
				return sdk.FormatInvariant(
					types.ModuleName, "reverse-index",
					fmt.Sprintf("address %s does not map back to provider %d", provider.Address, provider.Id),
				), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "reverse-index", "all provider indices consistent"), false
	}
}
