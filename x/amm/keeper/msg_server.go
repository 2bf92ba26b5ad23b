package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/zephyr-dex/zephyr/x/amm/types"
)

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(keeper *Keeper) ammtypes.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ ammtypes.MsgServer = msgServer{}

func (m msgServer) AddLiquidity(goCtx context.Context, msg *ammtypes.MsgAddLiquidity) (*ammtypes.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInvalidAddress, "invalid provider address: %s", err)
	}

	result, err := m.Keeper.AddLiquidity(ctx, provider, msg.AssetA, msg.AssetB, msg.DesiredA, msg.DesiredB, msg.MinA, msg.MinB)
	if err != nil {
		return nil, err
	}
	return &ammtypes.MsgAddLiquidityResponse{
		AmountA: result.AmountA,
		AmountB: result.AmountB,
		Shares:  result.Shares,
	}, nil
}

func (m msgServer) RemoveLiquidity(goCtx context.Context, msg *ammtypes.MsgRemoveLiquidity) (*ammtypes.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInvalidAddress, "invalid provider address: %s", err)
	}

	result, err := m.Keeper.RemoveLiquidity(ctx, provider, msg.AssetA, msg.AssetB, msg.Shares, msg.MinA, msg.MinB)
	if err != nil {
		return nil, err
	}
	return &ammtypes.MsgRemoveLiquidityResponse{
		AmountA: result.AmountA,
		AmountB: result.AmountB,
	}, nil
}

func (m msgServer) Swap(goCtx context.Context, msg *ammtypes.MsgSwap) (*ammtypes.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInvalidAddress, "invalid trader address: %s", err)
	}

	result, err := m.Keeper.ExecuteSwap(ctx, trader, msg.AssetIn, msg.AssetOut, msg.AmountIn, msg.MinAmountOut)
	if err != nil {
		return nil, err
	}
	return &ammtypes.MsgSwapResponse{
		AmountIn:  result.AmountIn,
		AmountOut: result.AmountOut,
	}, nil
}

func (m msgServer) MetaSwap(goCtx context.Context, msg *ammtypes.MsgMetaSwap) (*ammtypes.MsgMetaSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	relayer, err := sdk.AccAddressFromBech32(msg.Relayer)
	if err != nil {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInvalidAddress, "invalid relayer address: %s", err)
	}
	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, sdkerrors.Wrapf(ammtypes.ErrInvalidAddress, "invalid trader address: %s", err)
	}

	result, err := m.Keeper.ExecuteMetaSwap(ctx, relayer, trader, msg.AssetIn, msg.AssetOut, msg.AmountIn, msg.MinAmountOut, msg.Nonce, msg.Signature, msg.PubKey)
	if err != nil {
		return nil, err
	}
	return &ammtypes.MsgMetaSwapResponse{
		AmountIn:  result.AmountIn,
		AmountOut: result.AmountOut,
	}, nil
}
