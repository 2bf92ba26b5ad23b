package keeper

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/zephyr-dex/zephyr/x/amm/types"
)

// CalculateSwapOutput quotes a constant-product swap with the trading fee
// deducted from the input:
//
//	wFee = amountIn * (10000 - fee_bps)
//	out  = floor(wFee * reserveOut / (reserveIn * 10000 + wFee))
//
// The fee stays in the pool, so reserves grow faster than the product
// alone requires. A zero or negative argument quotes zero rather than
// erroring; callers decide whether a zero quote is acceptable.
func CalculateSwapOutput(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	if amountIn.IsNil() || reserveIn.IsNil() || reserveOut.IsNil() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "nil amount in swap quote")
	}
	if !amountIn.IsPositive() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), nil
	}

	feeFactor := math.NewInt(ammtypes.BpsDenominator - ammtypes.SwapFeeBps)
	wFee, err := SafeMul(amountIn, feeFactor)
	if err != nil {
		return math.Int{}, err
	}
	scaledReserve, err := SafeMul(reserveIn, math.NewInt(ammtypes.BpsDenominator))
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := SafeAdd(scaledReserve, wFee)
	if err != nil {
		return math.Int{}, err
	}
	return SafeMulDiv(wFee, reserveOut, denominator)
}

// ExecuteSwap trades amountIn of assetIn for assetOut against the pool
// addressed by the ordered pair (assetIn, assetOut). The input side of a
// swap is always the pool's A side; trading in the opposite direction
// requires the reverse pool.
func (k Keeper) ExecuteSwap(
	ctx sdk.Context,
	trader sdk.AccAddress,
	assetIn, assetOut string,
	amountIn, minAmountOut math.Int,
) (*ammtypes.SwapResult, error) {
	if amountIn.IsNil() || minAmountOut.IsNil() {
		return nil, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "nil amount")
	}
	if amountIn.IsNegative() || minAmountOut.IsNegative() {
		return nil, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "negative amount")
	}
	if amountIn.IsZero() {
		return nil, sdkerrors.Wrap(ammtypes.ErrZeroAmount, "swap input must be positive")
	}
	if assetIn == assetOut {
		return nil, sdkerrors.Wrap(ammtypes.ErrIdenticalAssets, "cannot swap an asset for itself")
	}
	if k.IsPaused(ctx) {
		return nil, sdkerrors.Wrap(ammtypes.ErrModulePaused, "trading is paused")
	}

	pool, found := k.LookupPool(ctx, assetIn, assetOut)
	if !found {
		return nil, sdkerrors.Wrapf(ammtypes.ErrPoolNotFound, "no pool for pair (%s, %s)", assetIn, assetOut)
	}
	reserveIn, reserveOut := pool.ReserveA, pool.ReserveB
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInsufficientLiquidity, "pool %d has no liquidity", pool.Id)
	}

	amountOut, err := CalculateSwapOutput(amountIn, reserveIn, reserveOut)
	if err != nil {
		return nil, err
	}
	if amountOut.IsZero() {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInsufficientLiquidity, "swap of %s quotes zero output", amountIn)
	}
	if amountOut.LT(minAmountOut) {
		return nil, sdkerrors.Wrapf(ammtypes.ErrSlippage,
			"output %s below minimum %s", amountOut, minAmountOut)
	}
	// Both sides must stay strictly inside the reserves; a swap can never
	// empty a pool.
	if amountIn.GTE(reserveIn) || amountOut.GTE(reserveOut) {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInsufficientLiquidity,
			"swap of %s against reserves (%s, %s) too large", amountIn, reserveIn, reserveOut)
	}

	newReserveIn, err := SafeAdd(reserveIn, amountIn)
	if err != nil {
		return nil, err
	}
	newReserveOut, err := SafeSub(reserveOut, amountOut)
	if err != nil {
		return nil, err
	}

	// The fee keeps the product non-decreasing; a decrease means the
	// quote arithmetic is broken.
	oldK, err := SafeMul(reserveIn, reserveOut)
	if err != nil {
		return nil, err
	}
	newK, err := SafeMul(newReserveIn, newReserveOut)
	if err != nil {
		return nil, err
	}
	if newK.LT(oldK) {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInvariantViolation,
			"constant product decreased from %s to %s", oldK, newK)
	}

	coinIn := sdk.NewCoins(sdk.NewCoin(assetIn, amountIn))
	if err := k.bankKeeper.SendCoins(ctx, trader, k.moduleAddress, coinIn); err != nil {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInsufficientBalance, "input transfer failed: %s", err)
	}
	coinOut := sdk.NewCoins(sdk.NewCoin(assetOut, amountOut))
	if err := k.bankKeeper.SendCoins(ctx, k.moduleAddress, trader, coinOut); err != nil {
		// Return the input so a failed payout leaves the trader whole.
		if revertErr := k.bankKeeper.SendCoins(ctx, k.moduleAddress, trader, coinIn); revertErr != nil {
			k.Logger(ctx).Error("failed to revert swap input",
				"trader", trader.String(), "amount", amountIn.String(), "error", revertErr)
		}
		return nil, sdkerrors.Wrapf(ammtypes.ErrInsufficientLiquidity, "output transfer failed: %s", err)
	}

	pool.ReserveA = newReserveIn
	pool.ReserveB = newReserveOut
	if err := k.UpdatePool(ctx, pool); err != nil {
		return nil, err
	}

	poolLabel := fmt.Sprintf("%d", pool.Id)
	k.metrics.SwapsTotal.WithLabelValues(poolLabel, assetIn, assetOut).Inc()
	k.metrics.SwapVolume.WithLabelValues(poolLabel, assetIn).Add(metricValue(amountIn))

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		ammtypes.EventTypeSwap,
		sdk.NewAttribute(ammtypes.AttributeKeyPoolID, poolLabel),
		sdk.NewAttribute(ammtypes.AttributeKeyTrader, trader.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyAssetIn, assetIn),
		sdk.NewAttribute(ammtypes.AttributeKeyAssetOut, assetOut),
		sdk.NewAttribute(ammtypes.AttributeKeyAmountIn, amountIn.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyAmountOut, amountOut.String()),
	))

	k.Logger(ctx).Info("swap executed",
		"pool_id", pool.Id,
		"trader", trader.String(),
		"asset_in", assetIn,
		"asset_out", assetOut,
		"amount_in", amountIn.String(),
		"amount_out", amountOut.String(),
	)

	return &ammtypes.SwapResult{
		Trader:    trader.String(),
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		AmountIn:  amountIn,
		AmountOut: amountOut,
	}, nil
}
