package keeper

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/zephyr-dex/zephyr/x/amm/types"
)

// GetLPBalance returns an account's share balance. Shares form one global
// ledger per account: deposits into any pool credit the same balance, and
// any pool's redemption rate applies to it on withdrawal.
func (k Keeper) GetLPBalance(ctx sdk.Context, address string) math.Int {
	store := k.getStore(ctx)
	bz := store.Get(LPBalanceKey(address))
	if bz == nil {
		return math.ZeroInt()
	}
	var balance math.Int
	if err := balance.Unmarshal(bz); err != nil {
		k.Logger(ctx).Error("corrupt share balance", "address", address, "error", err)
		return math.ZeroInt()
	}
	return balance
}

// SetLPBalance persists an account's share balance. Zero balances are
// deleted rather than stored.
func (k Keeper) SetLPBalance(ctx sdk.Context, address string, balance math.Int) error {
	store := k.getStore(ctx)
	if balance.IsNil() || balance.IsNegative() {
		return sdkerrors.Wrapf(ammtypes.ErrInvalidInput, "invalid share balance for %s", address)
	}
	if balance.IsZero() {
		store.Delete(LPBalanceKey(address))
		return nil
	}
	bz, err := balance.Marshal()
	if err != nil {
		return err
	}
	store.Set(LPBalanceKey(address), bz)
	return nil
}

// IterateLPBalances visits every non-zero share balance.
func (k Keeper) IterateLPBalances(ctx sdk.Context, fn func(address string, balance math.Int) bool) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, LPBalanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		address := string(iterator.Key()[len(LPBalanceKeyPrefix):])
		var balance math.Int
		if err := balance.Unmarshal(iterator.Value()); err != nil {
			k.Logger(ctx).Error("corrupt share balance during iteration", "address", address, "error", err)
			continue
		}
		if fn(address, balance) {
			break
		}
	}
}

// AddLiquidity deposits both assets of the ordered pair (assetA, assetB),
// creating the pool on first deposit.
//
// First deposit mints shares by the fixed two-refinement square root of
// desiredA*desiredB. Later deposits are ratio-constrained: the deposit is
// trimmed to the pool's current price, and minted shares are computed from
// the trimmed A-side amount against reserveA. Minted shares are credited
// to the provider's global ledger.
func (k Keeper) AddLiquidity(
	ctx sdk.Context,
	provider sdk.AccAddress,
	assetA, assetB string,
	desiredA, desiredB, minA, minB math.Int,
) (*ammtypes.LiquidityResult, error) {
	if assetA == assetB {
		return nil, sdkerrors.Wrap(ammtypes.ErrIdenticalAssets, "cannot pool an asset with itself")
	}
	if desiredA.IsNil() || desiredB.IsNil() || minA.IsNil() || minB.IsNil() {
		return nil, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "nil amount")
	}
	if desiredA.IsNegative() || desiredB.IsNegative() || minA.IsNegative() || minB.IsNegative() {
		return nil, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "negative amount")
	}
	if desiredA.IsZero() || desiredB.IsZero() {
		return nil, sdkerrors.Wrap(ammtypes.ErrZeroAmount, "deposit amounts must be positive")
	}

	pool, found := k.LookupPool(ctx, assetA, assetB)
	created := !found

	var finalA, finalB, minted math.Int
	if !found || pool.TotalShares.IsZero() {
		// First deposit into a new or fully drained pool sets the price.
		finalA, finalB = desiredA, desiredB
		product, err := SafeMul(finalA, finalB)
		if err != nil {
			return nil, err
		}
		minted, err = TwoStepSqrt(product)
		if err != nil {
			return nil, err
		}
		if minted.IsZero() {
			return nil, sdkerrors.Wrap(ammtypes.ErrInsufficientLiquidity, "deposit too small to mint shares")
		}
	} else {
		// Trim the deposit to the pool's price. The A side anchors share
		// minting, so the trimmed deposit is expressed through finalA.
		optimalB, err := SafeMulDiv(desiredA, pool.ReserveB, pool.ReserveA)
		if err != nil {
			return nil, err
		}
		if optimalB.LTE(desiredB) {
			finalA, finalB = desiredA, optimalB
		} else {
			optimalA, err := SafeMulDiv(desiredB, pool.ReserveA, pool.ReserveB)
			if err != nil {
				return nil, err
			}
			finalA, finalB = optimalA, desiredB
		}
		minted, err = SafeMulDiv(finalA, pool.TotalShares, pool.ReserveA)
		if err != nil {
			return nil, err
		}
		if minted.IsZero() {
			return nil, sdkerrors.Wrap(ammtypes.ErrInsufficientLiquidity, "deposit too small to mint shares")
		}
	}

	if finalA.LT(minA) || finalB.LT(minB) {
		return nil, sdkerrors.Wrapf(ammtypes.ErrSlippage,
			"deposit (%s %s, %s %s) below minimums (%s, %s)",
			finalA, assetA, finalB, assetB, minA, minB)
	}

	deposit := sdk.NewCoins(sdk.NewCoin(assetA, finalA), sdk.NewCoin(assetB, finalB))
	if err := k.bankKeeper.SendCoins(ctx, provider, k.moduleAddress, deposit); err != nil {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInsufficientBalance, "deposit transfer failed: %s", err)
	}

	if created {
		pool = *ammtypes.NewPool(0, assetA, assetB, math.ZeroInt(), math.ZeroInt(), math.ZeroInt())
	}
	var err error
	pool.ReserveA, err = SafeAdd(pool.ReserveA, finalA)
	if err != nil {
		return nil, err
	}
	pool.ReserveB, err = SafeAdd(pool.ReserveB, finalB)
	if err != nil {
		return nil, err
	}
	pool.TotalShares, err = SafeAdd(pool.TotalShares, minted)
	if err != nil {
		return nil, err
	}

	if created {
		if err := k.CreatePoolRecord(ctx, assetA, assetB, &pool); err != nil {
			return nil, err
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			ammtypes.EventTypePoolCreated,
			sdk.NewAttribute(ammtypes.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
			sdk.NewAttribute(ammtypes.AttributeKeyAssetA, assetA),
			sdk.NewAttribute(ammtypes.AttributeKeyAssetB, assetB),
		))
	} else if err := k.UpdatePool(ctx, pool); err != nil {
		return nil, err
	}

	balance := k.GetLPBalance(ctx, provider.String())
	newBalance, err := SafeAdd(balance, minted)
	if err != nil {
		return nil, err
	}
	if err := k.SetLPBalance(ctx, provider.String(), newBalance); err != nil {
		return nil, err
	}

	poolLabel := fmt.Sprintf("%d", pool.Id)
	k.metrics.LiquidityAdded.WithLabelValues(poolLabel, assetA).Add(metricValue(finalA))
	k.metrics.LiquidityAdded.WithLabelValues(poolLabel, assetB).Add(metricValue(finalB))

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		ammtypes.EventTypeAddLiquidity,
		sdk.NewAttribute(ammtypes.AttributeKeyPoolID, poolLabel),
		sdk.NewAttribute(ammtypes.AttributeKeyProvider, provider.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyAmountA, finalA.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyAmountB, finalB.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyShares, minted.String()),
	))

	k.Logger(ctx).Info("liquidity added",
		"pool_id", pool.Id,
		"provider", provider.String(),
		"amount_a", finalA.String(),
		"amount_b", finalB.String(),
		"shares", minted.String(),
	)

	return &ammtypes.LiquidityResult{
		Provider: provider.String(),
		AssetA:   assetA,
		AssetB:   assetB,
		AmountA:  finalA,
		AmountB:  finalB,
		Shares:   minted,
	}, nil
}

// RemoveLiquidity burns shares against the ordered pair's pool and pays
// out the proportional reserves.
//
// The burn is limited by both the provider's global share balance and the
// pool's own total: because the ledger spans pools, a provider can hold
// more shares than any single pool has outstanding.
func (k Keeper) RemoveLiquidity(
	ctx sdk.Context,
	provider sdk.AccAddress,
	assetA, assetB string,
	shares, minA, minB math.Int,
) (*ammtypes.LiquidityResult, error) {
	if shares.IsNil() || minA.IsNil() || minB.IsNil() {
		return nil, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "nil amount")
	}
	if shares.IsNegative() || minA.IsNegative() || minB.IsNegative() {
		return nil, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "negative amount")
	}

	pool, found := k.LookupPool(ctx, assetA, assetB)
	if !found {
		return nil, sdkerrors.Wrapf(ammtypes.ErrPoolNotFound, "no pool for pair (%s, %s)", assetA, assetB)
	}
	if shares.IsZero() {
		return nil, sdkerrors.Wrap(ammtypes.ErrZeroAmount, "shares must be positive")
	}

	balance := k.GetLPBalance(ctx, provider.String())
	if balance.LT(shares) {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInsufficientBalance,
			"share balance %s below requested %s", balance, shares)
	}
	if pool.TotalShares.IsZero() || shares.GT(pool.TotalShares) {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInsufficientLiquidity,
			"pool %d has %s shares outstanding, cannot redeem %s", pool.Id, pool.TotalShares, shares)
	}

	amountA, err := SafeMulDiv(shares, pool.ReserveA, pool.TotalShares)
	if err != nil {
		return nil, err
	}
	amountB, err := SafeMulDiv(shares, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return nil, err
	}

	if amountA.LT(minA) || amountB.LT(minB) {
		return nil, sdkerrors.Wrapf(ammtypes.ErrSlippage,
			"withdrawal (%s %s, %s %s) below minimums (%s, %s)",
			amountA, assetA, amountB, assetB, minA, minB)
	}

	payout := sdk.NewCoins(sdk.NewCoin(assetA, amountA), sdk.NewCoin(assetB, amountB))
	if !payout.IsZero() {
		if err := k.bankKeeper.SendCoins(ctx, k.moduleAddress, provider, payout); err != nil {
			return nil, sdkerrors.Wrapf(ammtypes.ErrInsufficientLiquidity, "payout transfer failed: %s", err)
		}
	}

	pool.ReserveA, err = SafeSub(pool.ReserveA, amountA)
	if err != nil {
		return nil, err
	}
	pool.ReserveB, err = SafeSub(pool.ReserveB, amountB)
	if err != nil {
		return nil, err
	}
	pool.TotalShares, err = SafeSub(pool.TotalShares, shares)
	if err != nil {
		return nil, err
	}
	// A fully drained pool keeps its record and pair index; the next
	// deposit re-prices it like a first deposit.
	if err := k.UpdatePool(ctx, pool); err != nil {
		return nil, err
	}

	newBalance, err := SafeSub(balance, shares)
	if err != nil {
		return nil, err
	}
	if err := k.SetLPBalance(ctx, provider.String(), newBalance); err != nil {
		return nil, err
	}

	poolLabel := fmt.Sprintf("%d", pool.Id)
	k.metrics.LiquidityRemoved.WithLabelValues(poolLabel, assetA).Add(metricValue(amountA))
	k.metrics.LiquidityRemoved.WithLabelValues(poolLabel, assetB).Add(metricValue(amountB))

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		ammtypes.EventTypeRemoveLiquidity,
		sdk.NewAttribute(ammtypes.AttributeKeyPoolID, poolLabel),
		sdk.NewAttribute(ammtypes.AttributeKeyProvider, provider.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyAmountA, amountA.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyAmountB, amountB.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyShares, shares.String()),
	))

	k.Logger(ctx).Info("liquidity removed",
		"pool_id", pool.Id,
		"provider", provider.String(),
		"amount_a", amountA.String(),
		"amount_b", amountB.String(),
		"shares", shares.String(),
	)

	return &ammtypes.LiquidityResult{
		Provider: provider.String(),
		AssetA:   assetA,
		AssetB:   assetB,
		AmountA:  amountA,
		AmountB:  amountB,
		Shares:   shares,
	}, nil
}
