package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer is the transaction-handling surface of the module.
type MsgServer interface {
	// AddLiquidity deposits both assets of an ordered pair, creating the
	// pool if it does not exist yet.
	AddLiquidity(ctx context.Context, msg *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)

	// RemoveLiquidity burns shares and withdraws proportional reserves.
	RemoveLiquidity(ctx context.Context, msg *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)

	// Swap trades assetIn for assetOut at the constant-product price.
	Swap(ctx context.Context, msg *MsgSwap) (*MsgSwapResponse, error)

	// MetaSwap executes a swap on behalf of a trader who authorized it
	// with an offline secp256k1 signature.
	MetaSwap(ctx context.Context, msg *MsgMetaSwap) (*MsgMetaSwapResponse, error)
}

// MsgAddLiquidityResponse reports the amounts actually deposited and the
// shares minted.
type MsgAddLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
	Shares  math.Int `json:"shares"`
}

// MsgRemoveLiquidityResponse reports the amounts withdrawn.
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgSwapResponse reports the executed trade.
type MsgSwapResponse struct {
	AmountIn  math.Int `json:"amount_in"`
	AmountOut math.Int `json:"amount_out"`
}

// MsgMetaSwapResponse reports the executed delegated trade.
type MsgMetaSwapResponse struct {
	AmountIn  math.Int `json:"amount_in"`
	AmountOut math.Int `json:"amount_out"`
}
