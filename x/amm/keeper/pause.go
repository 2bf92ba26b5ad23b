package keeper

import (
	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/zephyr-dex/zephyr/x/amm/types"
)

// IsPaused reports whether trading is halted. Liquidity operations stay
// available while paused so providers can always exit.
func (k Keeper) IsPaused(ctx sdk.Context) bool {
	store := k.getStore(ctx)
	bz := store.Get(ammtypes.PausedKey)
	return len(bz) == 1 && bz[0] == 1
}

// SetPaused writes the pause flag without an authority check. Used by
// genesis import.
func (k Keeper) SetPaused(ctx sdk.Context, paused bool) {
	store := k.getStore(ctx)
	if paused {
		store.Set(ammtypes.PausedKey, []byte{1})
	} else {
		store.Delete(ammtypes.PausedKey)
	}
}

// PauseTrading halts swaps. Only the module authority may pause.
func (k Keeper) PauseTrading(ctx sdk.Context, authority string) error {
	if authority != k.authority {
		return sdkerrors.Wrapf(ammtypes.ErrNotAuthorized,
			"%s is not the module authority", authority)
	}
	k.SetPaused(ctx, true)
	k.Logger(ctx).Info("trading paused", "authority", authority)
	ctx.EventManager().EmitEvent(sdk.NewEvent("amm_trading_paused"))
	return nil
}

// ResumeTrading lifts a trading halt. Only the module authority may resume.
func (k Keeper) ResumeTrading(ctx sdk.Context, authority string) error {
	if authority != k.authority {
		return sdkerrors.Wrapf(ammtypes.ErrNotAuthorized,
			"%s is not the module authority", authority)
	}
	k.SetPaused(ctx, false)
	k.Logger(ctx).Info("trading resumed", "authority", authority)
	ctx.EventManager().EmitEvent(sdk.NewEvent("amm_trading_resumed"))
	return nil
}
