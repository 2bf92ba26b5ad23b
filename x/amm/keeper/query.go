package keeper

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/zephyr-dex/zephyr/x/amm/types"
)

// GetReserves returns the current reserves of the pool for an ordered
// pair.
func (k Keeper) GetReserves(ctx sdk.Context, assetA, assetB string) (reserveA, reserveB math.Int, err error) {
	pool, found := k.LookupPool(ctx, assetA, assetB)
	if !found {
		return math.Int{}, math.Int{}, sdkerrors.Wrapf(ammtypes.ErrPoolNotFound,
			"no pool for pair (%s, %s)", assetA, assetB)
	}
	return pool.ReserveA, pool.ReserveB, nil
}

// GetAmountOut quotes a swap against the pool for (assetIn, assetOut)
// without executing it.
func (k Keeper) GetAmountOut(ctx sdk.Context, assetIn, assetOut string, amountIn math.Int) (math.Int, error) {
	pool, found := k.LookupPool(ctx, assetIn, assetOut)
	if !found {
		return math.Int{}, sdkerrors.Wrapf(ammtypes.ErrPoolNotFound,
			"no pool for pair (%s, %s)", assetIn, assetOut)
	}
	return CalculateSwapOutput(amountIn, pool.ReserveA, pool.ReserveB)
}
