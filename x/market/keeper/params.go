package keeper

import (
	"context"
	"encoding/json"

	"github.com/vela-compute/vela/x/market/types"
)

// GetParams returns the market module parameters, falling back to defaults
// when none are stored.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	store := k.getStore(ctx)
	bz := store.Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams(), nil
	}

	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, types.ErrStorageFailed.Wrapf("corrupt params: %v", err)
	}
	return params, nil
}

// SetParams stores the market module parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	bz, err := json.Marshal(&params)
	if err != nil {
		return types.ErrStorageFailed.Wrapf("marshal params: %v", err)
	}
	store := k.getStore(ctx)
	store.Set(ParamsKey, bz)
	return nil
}
