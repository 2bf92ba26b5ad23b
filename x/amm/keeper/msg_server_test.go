package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	keepertest "github.com/zephyr-dex/zephyr/testutil/keeper"
	"github.com/zephyr-dex/zephyr/x/amm/keeper"
	"github.com/zephyr-dex/zephyr/x/amm/types"
)

// TestMsgServer_LiquidityLifecycle drives deposit, swap, and withdrawal
// through the message handlers.
func TestMsgServer_LiquidityLifecycle(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	srv := keeper.NewMsgServerImpl(k)
	provider, trader := testAddr(1), testAddr(2)

	bank.FundAccount(provider, sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1000)),
		sdk.NewCoin("uusdc", math.NewInt(1000)),
	))
	addResp, err := srv.AddLiquidity(ctx, types.NewMsgAddLiquidity(
		provider.String(), "uatom", "uusdc",
		math.NewInt(1000), math.NewInt(1000), math.ZeroInt(), math.ZeroInt(),
	))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(125002), addResp.Shares)

	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))
	swapResp, err := srv.Swap(ctx, types.NewMsgSwap(
		trader.String(), "uatom", "uusdc", math.NewInt(100), math.NewInt(1),
	))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(90), swapResp.AmountOut)

	removeResp, err := srv.RemoveLiquidity(ctx, types.NewMsgRemoveLiquidity(
		provider.String(), "uatom", "uusdc",
		addResp.Shares, math.ZeroInt(), math.ZeroInt(),
	))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1100), removeResp.AmountA)
	require.Equal(t, math.NewInt(910), removeResp.AmountB)
}

// TestMsgServer_RejectsInvalidMessages verifies stateless validation runs
// before any state touch.
func TestMsgServer_RejectsInvalidMessages(t *testing.T) {
	k, _, ctx := keepertest.AmmKeeper(t)
	srv := keeper.NewMsgServerImpl(k)

	_, err := srv.Swap(ctx, types.NewMsgSwap(
		"not-an-address", "uatom", "uusdc", math.NewInt(100), math.NewInt(1),
	))
	require.ErrorIs(t, err, types.ErrInvalidAddress)

	_, err = srv.AddLiquidity(ctx, types.NewMsgAddLiquidity(
		testAddr(1).String(), "uatom", "uatom",
		math.NewInt(1), math.NewInt(1), math.ZeroInt(), math.ZeroInt(),
	))
	require.ErrorIs(t, err, types.ErrIdenticalAssets)
}

// TestMsgServer_MetaSwap drives a delegated swap through the handler.
func TestMsgServer_MetaSwap(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	srv := keeper.NewMsgServerImpl(k)
	provider, trader, relayer := testAddr(1), testAddr(2), testAddr(3)

	setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(1000))
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))

	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	amountIn, minOut := math.NewInt(100), math.NewInt(1)
	sig := signMetaSwap(t, key, 42, amountIn, minOut)

	resp, err := srv.MetaSwap(ctx, types.NewMsgMetaSwap(
		relayer.String(), trader.String(), "uatom", "uusdc",
		amountIn, minOut, 42, sig, key.PubKey().SerializeCompressed(),
	))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(90), resp.AmountOut)
	require.True(t, k.IsNonceUsed(ctx, trader.String(), 42))
}
