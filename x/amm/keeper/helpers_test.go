package keeper_test

import (
	"bytes"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/zephyr-dex/zephyr/testutil/keeper"
	"github.com/zephyr-dex/zephyr/x/amm/keeper"
)

func testAddr(b byte) sdk.AccAddress {
	return sdk.AccAddress(bytes.Repeat([]byte{b}, 20))
}

// setupPool funds the provider and seeds a pool for the ordered pair
// (assetA, assetB), returning the shares minted.
func setupPool(
	t *testing.T,
	k *keeper.Keeper,
	bank *keepertest.MockBankKeeper,
	ctx sdk.Context,
	provider sdk.AccAddress,
	assetA, assetB string,
	amountA, amountB math.Int,
) math.Int {
	t.Helper()
	bank.FundAccount(provider, sdk.NewCoins(sdk.NewCoin(assetA, amountA), sdk.NewCoin(assetB, amountB)))
	result, err := k.AddLiquidity(ctx, provider, assetA, assetB, amountA, amountB, math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	return result.Shares
}
