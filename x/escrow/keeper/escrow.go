package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vela-compute/vela/x/escrow/types"
)

// Deposit moves amount of denom from the payer into escrow custody and
// credits the payer's unlocked balance. The bank transfer happens first; the
// internal credit is only recorded once custody actually holds the funds.
func (k Keeper) Deposit(ctx context.Context, denom string, payer sdk.AccAddress, amount math.Int) error {
	if err := validateAmount(denom, amount); err != nil {
		return err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if amount.LT(params.MinDeposit) {
		return types.ErrDepositBelowMinimum.Wrapf("%s < %s", amount, params.MinDeposit)
	}

	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, payer, types.ModuleName, coins); err != nil {
		return types.ErrTransferFailed.Wrapf("deposit from %s: %v", payer, err)
	}

	account := k.getOrNewTenantAccount(ctx, payer, denom)
	account.UnlockedBalance = account.UnlockedBalance.Add(amount)
	if err := k.setTenantAccount(ctx, payer, denom, account); err != nil {
		return err
	}

	k.emitBalanceEvent(ctx, types.EventTypeDeposit, payer, denom, amount)
	return nil
}

// Withdraw debits the recipient's unlocked balance and pays out from custody.
// The balance guard runs before any fund movement; a failed bank transfer
// leaves the account untouched.
//
// The recipient's own authorization is deliberately not enforced here; the
// message boundary that invokes the keeper owns that check.
func (k Keeper) Withdraw(ctx context.Context, denom string, recipient sdk.AccAddress, amount math.Int) error {
	if err := validateAmount(denom, amount); err != nil {
		return err
	}

	account, err := k.GetTenantAccount(ctx, recipient, denom)
	if err != nil {
		return err
	}
	if account.UnlockedBalance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("unlocked %s < %s", account.UnlockedBalance, amount)
	}

	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coins); err != nil {
		return types.ErrTransferFailed.Wrapf("withdraw to %s: %v", recipient, err)
	}

	account.UnlockedBalance = account.UnlockedBalance.Sub(amount)
	if err := k.setTenantAccount(ctx, recipient, denom, account); err != nil {
		return err
	}

	k.emitBalanceEvent(ctx, types.EventTypeWithdraw, recipient, denom, amount)
	return nil
}

// Lock moves amount from the tenant's unlocked balance to its locked balance.
// Both fields change together; the move is never observable half-applied.
func (k Keeper) Lock(ctx context.Context, denom string, tenant sdk.AccAddress, amount math.Int) error {
	if err := validateAmount(denom, amount); err != nil {
		return err
	}

	account, err := k.GetTenantAccount(ctx, tenant, denom)
	if err != nil {
		return err
	}
	if account.UnlockedBalance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("unlocked %s < %s", account.UnlockedBalance, amount)
	}

	account.UnlockedBalance = account.UnlockedBalance.Sub(amount)
	account.LockedBalance = account.LockedBalance.Add(amount)
	if err := k.setTenantAccount(ctx, tenant, denom, account); err != nil {
		return err
	}

	k.emitBalanceEvent(ctx, types.EventTypeLock, tenant, denom, amount)
	return nil
}

// Unlock moves amount from the tenant's locked balance back to unlocked.
func (k Keeper) Unlock(ctx context.Context, denom string, tenant sdk.AccAddress, amount math.Int) error {
	if err := validateAmount(denom, amount); err != nil {
		return err
	}

	account, err := k.GetTenantAccount(ctx, tenant, denom)
	if err != nil {
		return err
	}
	if account.LockedBalance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("locked %s < %s", account.LockedBalance, amount)
	}

	account.LockedBalance = account.LockedBalance.Sub(amount)
	account.UnlockedBalance = account.UnlockedBalance.Add(amount)
	if err := k.setTenantAccount(ctx, tenant, denom, account); err != nil {
		return err
	}

	k.emitBalanceEvent(ctx, types.EventTypeUnlock, tenant, denom, amount)
	return nil
}

// Settle is the sole bridge between tenant funds and provider funds: it debits
// the tenant's locked balance and credits the provider's earnings in one
// operation. Funds stay in escrow custody until the provider withdraws them.
func (k Keeper) Settle(ctx context.Context, denom string, tenant sdk.AccAddress, amount math.Int, providerID uint64) error {
	if err := validateAmount(denom, amount); err != nil {
		return err
	}

	if _, err := k.registryKeeper.GetProvider(ctx, providerID); err != nil {
		return types.ErrNotProvider.Wrapf("provider %d: %v", providerID, err)
	}

	account, err := k.GetTenantAccount(ctx, tenant, denom)
	if err != nil {
		return err
	}
	if account.LockedBalance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("locked %s < %s", account.LockedBalance, amount)
	}

	account.LockedBalance = account.LockedBalance.Sub(amount)
	earnings := k.getOrNewProviderEarnings(ctx, providerID, denom)
	earnings.Earned = earnings.Earned.Add(amount)
	earnings.Balance = earnings.Balance.Add(amount)

	// Both updates commit in the same operation; a debit without the matching
	// credit would break conservation.
	if err := k.setTenantAccount(ctx, tenant, denom, account); err != nil {
		return err
	}
	if err := k.setProviderEarnings(ctx, providerID, denom, earnings); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSettle,
			sdk.NewAttribute(types.AttributeKeyTenant, tenant.String()),
			sdk.NewAttribute(types.AttributeKeyProviderID, fmt.Sprintf("%d", providerID)),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	return nil
}

// WithdrawProviderEarnings pays out the caller's full claimable balance for
// denom. The caller must resolve to a registered provider. The bank transfer
// and the bookkeeping update are one unit: a failed transfer leaves the
// earnings record unchanged.
func (k Keeper) WithdrawProviderEarnings(ctx context.Context, denom string, caller sdk.AccAddress) (math.Int, error) {
	providerID, _, err := k.registryKeeper.GetProviderByAddress(ctx, caller)
	if err != nil {
		return math.Int{}, types.ErrNotProvider.Wrapf("%s: %v", caller, err)
	}

	earnings, err := k.GetProviderEarnings(ctx, providerID, denom)
	if err != nil {
		return math.Int{}, err
	}
	if !earnings.Balance.IsPositive() {
		return math.Int{}, types.ErrNothingToWithdraw.Wrapf("provider %d has zero balance in %s", providerID, denom)
	}

	payout := earnings.Balance
	coins := sdk.NewCoins(sdk.NewCoin(denom, payout))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, caller, coins); err != nil {
		return math.Int{}, types.ErrTransferFailed.Wrapf("earnings payout to %s: %v", caller, err)
	}

	earnings.Withdrawn = earnings.Withdrawn.Add(payout)
	earnings.Balance = math.ZeroInt()
	if err := k.setProviderEarnings(ctx, providerID, denom, earnings); err != nil {
		return math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEarningsWithdrawn,
			sdk.NewAttribute(types.AttributeKeyProviderID, fmt.Sprintf("%d", providerID)),
			sdk.NewAttribute(types.AttributeKeyRecipient, caller.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, payout.String()),
		),
	)

	return payout, nil
}

// GetTenantAccount returns the tenant's balance record for denom.
func (k Keeper) GetTenantAccount(ctx context.Context, tenant sdk.AccAddress, denom string) (types.TenantAccount, error) {
	store := k.getStore(ctx)
	bz := store.Get(TenantKey(tenant, denom))
	if bz == nil {
		return types.TenantAccount{}, types.ErrTenantNotFound.Wrapf("%s/%s", tenant, denom)
	}

	var account types.TenantAccount
	if err := json.Unmarshal(bz, &account); err != nil {
		return types.TenantAccount{}, types.ErrStorageFailed.Wrapf("corrupt tenant record %s/%s: %v", tenant, denom, err)
	}
	return account, nil
}

// GetProviderEarnings returns the earnings record for (provider id, denom).
func (k Keeper) GetProviderEarnings(ctx context.Context, providerID uint64, denom string) (types.ProviderEarnings, error) {
	store := k.getStore(ctx)
	bz := store.Get(EarningsKey(providerID, denom))
	if bz == nil {
		return types.ProviderEarnings{}, types.ErrEarningsNotFound.Wrapf("provider %d, denom %s", providerID, denom)
	}

	var earnings types.ProviderEarnings
	if err := json.Unmarshal(bz, &earnings); err != nil {
		return types.ProviderEarnings{}, types.ErrStorageFailed.Wrapf("corrupt earnings record %d/%s: %v", providerID, denom, err)
	}
	return earnings, nil
}

func (k Keeper) getOrNewTenantAccount(ctx context.Context, tenant sdk.AccAddress, denom string) types.TenantAccount {
	account, err := k.GetTenantAccount(ctx, tenant, denom)
	if err != nil {
		return types.NewTenantAccount()
	}
	return account
}

func (k Keeper) getOrNewProviderEarnings(ctx context.Context, providerID uint64, denom string) types.ProviderEarnings {
	earnings, err := k.GetProviderEarnings(ctx, providerID, denom)
	if err != nil {
		return types.NewProviderEarnings()
	}
	return earnings
}

func (k Keeper) setTenantAccount(ctx context.Context, tenant sdk.AccAddress, denom string, account types.TenantAccount) error {
	bz, err := json.Marshal(&account)
	if err != nil {
		return types.ErrStorageFailed.Wrapf("marshal tenant record: %v", err)
	}
	store := k.getStore(ctx)
	store.Set(TenantKey(tenant, denom), bz)
	return nil
}

func (k Keeper) setProviderEarnings(ctx context.Context, providerID uint64, denom string, earnings types.ProviderEarnings) error {
	bz, err := json.Marshal(&earnings)
	if err != nil {
		return types.ErrStorageFailed.Wrapf("marshal earnings record: %v", err)
	}
	store := k.getStore(ctx)
	store.Set(EarningsKey(providerID, denom), bz)
	return nil
}

func (k Keeper) emitBalanceEvent(ctx context.Context, eventType string, who sdk.AccAddress, denom string, amount math.Int) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyTenant, who.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
}

func validateAmount(denom string, amount math.Int) error {
	if err := sdk.ValidateDenom(denom); err != nil {
		return types.ErrInvalidDenom.Wrap(err.Error())
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("got %v", amount)
	}
	return nil
}
