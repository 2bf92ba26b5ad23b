package types

import (
	"cosmossdk.io/math"
)

// LiquidityResult is the record returned to the caller of a liquidity
// operation. The source system kept a single overwritten "last event"
// slot; here every operation returns its own record and additionally
// emits an sdk event for observers.
type LiquidityResult struct {
	Provider string   `json:"provider"`
	AssetA   string   `json:"asset_a"`
	AssetB   string   `json:"asset_b"`
	AmountA  math.Int `json:"amount_a"`
	AmountB  math.Int `json:"amount_b"`
	Shares   math.Int `json:"shares"`
}

// SwapResult is the record returned to the caller of a swap, direct or
// delegated.
type SwapResult struct {
	Trader    string   `json:"trader"`
	AssetIn   string   `json:"asset_in"`
	AssetOut  string   `json:"asset_out"`
	AmountIn  math.Int `json:"amount_in"`
	AmountOut math.Int `json:"amount_out"`
}
