package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/zephyr-dex/zephyr/testutil/keeper"
	"github.com/zephyr-dex/zephyr/x/amm/types"
)

// TestAddLiquidity_FirstDeposit verifies first-deposit share minting uses
// the two-refinement square root: sqrt-ish(1000*4000) = 500002.
func TestAddLiquidity_FirstDeposit(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider := testAddr(1)

	shares := setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(4000))
	require.Equal(t, math.NewInt(500002), shares)

	pool, found := k.LookupPool(ctx, "uatom", "uusdc")
	require.True(t, found)
	require.Equal(t, math.NewInt(1000), pool.ReserveA)
	require.Equal(t, math.NewInt(4000), pool.ReserveB)
	require.Equal(t, math.NewInt(500002), pool.TotalShares)
	require.Equal(t, math.NewInt(500002), k.GetLPBalance(ctx, provider.String()))

	// Reserves now live in the module account.
	require.Equal(t, math.NewInt(1000), bank.GetBalance(ctx, k.GetModuleAddress(), "uatom").Amount)
	require.Equal(t, math.NewInt(4000), bank.GetBalance(ctx, k.GetModuleAddress(), "uusdc").Amount)
}

// TestAddLiquidity_TopUpAConstrained verifies a follow-up deposit is
// trimmed on the B side when B is over-supplied.
func TestAddLiquidity_TopUpAConstrained(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider := testAddr(1)

	setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(4000))

	bank.FundAccount(provider, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100)), sdk.NewCoin("uusdc", math.NewInt(500))))
	result, err := k.AddLiquidity(ctx, provider, "uatom", "uusdc",
		math.NewInt(100), math.NewInt(500), math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)

	// optimalB = 100 * 4000 / 1000 = 400, under the desired 500.
	require.Equal(t, math.NewInt(100), result.AmountA)
	require.Equal(t, math.NewInt(400), result.AmountB)
	// minted = 100 * 500002 / 1000, floored.
	require.Equal(t, math.NewInt(50000), result.Shares)

	// The excess 100 uusdc never left the provider.
	require.Equal(t, math.NewInt(100), bank.GetBalance(ctx, provider, "uusdc").Amount)
}

// TestAddLiquidity_TopUpBConstrained verifies trimming on the A side when
// B is the scarce leg.
func TestAddLiquidity_TopUpBConstrained(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider := testAddr(1)

	setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(4000))

	bank.FundAccount(provider, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100)), sdk.NewCoin("uusdc", math.NewInt(300))))
	result, err := k.AddLiquidity(ctx, provider, "uatom", "uusdc",
		math.NewInt(100), math.NewInt(300), math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)

	// optimalB = 400 exceeds desired 300, so A trims to 300*1000/4000 = 75.
	require.Equal(t, math.NewInt(75), result.AmountA)
	require.Equal(t, math.NewInt(300), result.AmountB)
}

// TestAddLiquidity_SlippageGuard verifies the deposit minimums apply to
// the trimmed amounts.
func TestAddLiquidity_SlippageGuard(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider := testAddr(1)

	setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(4000))

	bank.FundAccount(provider, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100)), sdk.NewCoin("uusdc", math.NewInt(500))))
	_, err := k.AddLiquidity(ctx, provider, "uatom", "uusdc",
		math.NewInt(100), math.NewInt(500), math.ZeroInt(), math.NewInt(450))
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrSlippage)
}

// TestAddLiquidity_Rejections covers the validation failures.
func TestAddLiquidity_Rejections(t *testing.T) {
	k, _, ctx := keepertest.AmmKeeper(t)
	provider := testAddr(1)

	_, err := k.AddLiquidity(ctx, provider, "uatom", "uatom",
		math.NewInt(100), math.NewInt(100), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrIdenticalAssets)

	_, err = k.AddLiquidity(ctx, provider, "uatom", "uusdc",
		math.ZeroInt(), math.NewInt(100), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrZeroAmount)

	_, err = k.AddLiquidity(ctx, provider, "uatom", "uusdc",
		math.NewInt(-5), math.NewInt(100), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidInput)

	// Unfunded provider cannot deposit.
	_, err = k.AddLiquidity(ctx, provider, "uatom", "uusdc",
		math.NewInt(100), math.NewInt(100), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

// TestRemoveLiquidity_FullRoundTrip verifies burning all shares returns
// the full deposit.
func TestRemoveLiquidity_FullRoundTrip(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider := testAddr(1)

	shares := setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(4000))

	result, err := k.RemoveLiquidity(ctx, provider, "uatom", "uusdc",
		shares, math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1000), result.AmountA)
	require.Equal(t, math.NewInt(4000), result.AmountB)

	require.Equal(t, math.NewInt(1000), bank.GetBalance(ctx, provider, "uatom").Amount)
	require.Equal(t, math.NewInt(4000), bank.GetBalance(ctx, provider, "uusdc").Amount)
	require.True(t, k.GetLPBalance(ctx, provider.String()).IsZero())

	// The drained pool stays addressable.
	pool, found := k.LookupPool(ctx, "uatom", "uusdc")
	require.True(t, found)
	require.True(t, pool.ReserveA.IsZero())
	require.True(t, pool.ReserveB.IsZero())
	require.True(t, pool.TotalShares.IsZero())
}

// TestRemoveLiquidity_Partial verifies proportional withdrawal with
// floored amounts.
func TestRemoveLiquidity_Partial(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider := testAddr(1)

	setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(4000))

	// 100000 of 500002 shares: floor(100000*1000/500002) = 199.
	result, err := k.RemoveLiquidity(ctx, provider, "uatom", "uusdc",
		math.NewInt(100000), math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(199), result.AmountA)
	require.Equal(t, math.NewInt(799), result.AmountB)

	pool, _ := k.LookupPool(ctx, "uatom", "uusdc")
	require.Equal(t, math.NewInt(801), pool.ReserveA)
	require.Equal(t, math.NewInt(3201), pool.ReserveB)
	require.Equal(t, math.NewInt(400002), pool.TotalShares)
}

// TestRemoveLiquidity_GlobalLedger verifies shares earned in one pool can
// redeem against another, capped by the target pool's outstanding total.
func TestRemoveLiquidity_GlobalLedger(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider := testAddr(1)

	sharesSmall := setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(100), math.NewInt(100))
	sharesLarge := setupPool(t, k, bank, ctx, provider, "ujuno", "uosmo", math.NewInt(400), math.NewInt(400))
	require.Equal(t, math.NewInt(1252), sharesSmall)
	require.Equal(t, math.NewInt(20002), sharesLarge)

	total := sharesSmall.Add(sharesLarge)
	require.Equal(t, total, k.GetLPBalance(ctx, provider.String()))

	// The whole balance exceeds the small pool's outstanding shares.
	_, err := k.RemoveLiquidity(ctx, provider, "uatom", "uusdc",
		total, math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	// Shares minted by the small pool redeem against the large one.
	result, err := k.RemoveLiquidity(ctx, provider, "ujuno", "uosmo",
		sharesSmall, math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(25), result.AmountA)
	require.Equal(t, math.NewInt(25), result.AmountB)
}

// TestRemoveLiquidity_Rejections covers the validation failures.
func TestRemoveLiquidity_Rejections(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider := testAddr(1)

	_, err := k.RemoveLiquidity(ctx, provider, "uatom", "uusdc",
		math.NewInt(10), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	shares := setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(4000))

	_, err = k.RemoveLiquidity(ctx, provider, "uatom", "uusdc",
		math.ZeroInt(), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrZeroAmount)

	_, err = k.RemoveLiquidity(ctx, provider, "uatom", "uusdc",
		shares.AddRaw(1), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientBalance)

	stranger := testAddr(2)
	_, err = k.RemoveLiquidity(ctx, stranger, "uatom", "uusdc",
		math.NewInt(1), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientBalance)

	_, err = k.RemoveLiquidity(ctx, provider, "uatom", "uusdc",
		shares, math.NewInt(1001), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrSlippage)
}

// TestAddLiquidity_RevivesDrainedPool verifies a deposit after full
// withdrawal re-prices the pool like a first deposit.
func TestAddLiquidity_RevivesDrainedPool(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider := testAddr(1)

	shares := setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(4000))
	_, err := k.RemoveLiquidity(ctx, provider, "uatom", "uusdc", shares, math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)

	revived := setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(4000))
	require.Equal(t, math.NewInt(500002), revived)

	// Same pool record, not a new one.
	require.Equal(t, uint64(1), k.GetPoolCount(ctx))
}
