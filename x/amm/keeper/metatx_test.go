package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	keepertest "github.com/zephyr-dex/zephyr/testutil/keeper"
	"github.com/zephyr-dex/zephyr/x/amm/types"
)

// signMetaSwap produces the compact authorization signature a trader
// creates offline.
func signMetaSwap(t *testing.T, key *secp256k1.PrivateKey, nonce uint64, amountIn, minAmountOut math.Int) []byte {
	t.Helper()
	digest := types.MetaSwapDigest(nonce, amountIn, minAmountOut)
	return ecdsa.SignCompact(key, digest[:], true)
}

// TestMetaSwap_Valid verifies a relayed swap executes for the trader and
// consumes their nonce.
func TestMetaSwap_Valid(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider, trader, relayer := testAddr(1), testAddr(2), testAddr(3)

	setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(1000))
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))

	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	amountIn, minOut := math.NewInt(100), math.NewInt(1)
	sig := signMetaSwap(t, key, 7, amountIn, minOut)

	result, err := k.ExecuteMetaSwap(ctx, relayer, trader, "uatom", "uusdc",
		amountIn, minOut, 7, sig, key.PubKey().SerializeCompressed())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(90), result.AmountOut)
	require.Equal(t, trader.String(), result.Trader)

	// Funds moved for the trader; the relayer touched nothing.
	require.Equal(t, math.NewInt(90), bank.GetBalance(ctx, trader, "uusdc").Amount)
	require.True(t, bank.GetBalance(ctx, relayer, "uusdc").Amount.IsZero())
	require.True(t, bank.GetBalance(ctx, relayer, "uatom").Amount.IsZero())

	require.True(t, k.IsNonceUsed(ctx, trader.String(), 7))
	stored, ok := k.StoredNonce(ctx, trader.String())
	require.True(t, ok)
	require.Equal(t, uint64(7), stored)
}

// TestMetaSwap_OneShotNonce verifies an account gets exactly one
// delegated swap: a second attempt fails even with a fresh nonce and a
// valid signature.
func TestMetaSwap_OneShotNonce(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider, trader, relayer := testAddr(1), testAddr(2), testAddr(3)

	setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(10_000), math.NewInt(10_000))
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(200))))

	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	pub := key.PubKey().SerializeCompressed()
	amountIn, minOut := math.NewInt(100), math.NewInt(1)

	_, err = k.ExecuteMetaSwap(ctx, relayer, trader, "uatom", "uusdc",
		amountIn, minOut, 1, signMetaSwap(t, key, 1, amountIn, minOut), pub)
	require.NoError(t, err)

	_, err = k.ExecuteMetaSwap(ctx, relayer, trader, "uatom", "uusdc",
		amountIn, minOut, 2, signMetaSwap(t, key, 2, amountIn, minOut), pub)
	require.ErrorIs(t, err, types.ErrInvalidNonce)
}

// TestMetaSwap_WrongKey verifies a signature from a different key is
// rejected and leaves the nonce unconsumed.
func TestMetaSwap_WrongKey(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider, trader, relayer := testAddr(1), testAddr(2), testAddr(3)

	setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(1000))
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))

	signer, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	claimed, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	amountIn, minOut := math.NewInt(100), math.NewInt(1)
	sig := signMetaSwap(t, signer, 1, amountIn, minOut)

	_, err = k.ExecuteMetaSwap(ctx, relayer, trader, "uatom", "uusdc",
		amountIn, minOut, 1, sig, claimed.PubKey().SerializeCompressed())
	require.ErrorIs(t, err, types.ErrInvalidSignature)
	require.False(t, k.HasAuthorizationRecord(ctx, trader.String()))
}

// TestMetaSwap_TamperedAmount verifies changing the amount after signing
// invalidates the authorization.
func TestMetaSwap_TamperedAmount(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider, trader, relayer := testAddr(1), testAddr(2), testAddr(3)

	setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(1000))
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(200))))

	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	sig := signMetaSwap(t, key, 1, math.NewInt(100), math.NewInt(1))

	// Relayer inflates the signed 100 to 200.
	_, err = k.ExecuteMetaSwap(ctx, relayer, trader, "uatom", "uusdc",
		math.NewInt(200), math.NewInt(1), 1, sig, key.PubKey().SerializeCompressed())
	require.ErrorIs(t, err, types.ErrInvalidSignature)
	require.False(t, k.HasAuthorizationRecord(ctx, trader.String()))
}

// TestMetaSwap_FailedSwapKeepsAuthorization verifies a swap failure after
// a valid signature rolls back the nonce record, so the trader can retry.
func TestMetaSwap_FailedSwapKeepsAuthorization(t *testing.T) {
	k, bank, ctx := keepertest.AmmKeeper(t)
	provider, trader, relayer := testAddr(1), testAddr(2), testAddr(3)

	setupPool(t, k, bank, ctx, provider, "uatom", "uusdc", math.NewInt(1000), math.NewInt(1000))
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))

	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	pub := key.PubKey().SerializeCompressed()
	amountIn := math.NewInt(100)

	// Unsatisfiable minimum: authorization verifies, swap fails.
	tooHigh := math.NewInt(1000)
	_, err = k.ExecuteMetaSwap(ctx, relayer, trader, "uatom", "uusdc",
		amountIn, tooHigh, 1, signMetaSwap(t, key, 1, amountIn, tooHigh), pub)
	require.ErrorIs(t, err, types.ErrSlippage)
	require.False(t, k.HasAuthorizationRecord(ctx, trader.String()))

	// The account's one authorization is still spendable.
	minOut := math.NewInt(1)
	_, err = k.ExecuteMetaSwap(ctx, relayer, trader, "uatom", "uusdc",
		amountIn, minOut, 1, signMetaSwap(t, key, 1, amountIn, minOut), pub)
	require.NoError(t, err)
	require.True(t, k.IsNonceUsed(ctx, trader.String(), 1))
}

// TestAuthorizeMetaSwap_MalformedInputs covers signature and key length
// validation.
func TestAuthorizeMetaSwap_MalformedInputs(t *testing.T) {
	k, _, ctx := keepertest.AmmKeeper(t)
	trader := testAddr(2)

	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	pub := key.PubKey().SerializeCompressed()
	sig := signMetaSwap(t, key, 1, math.NewInt(100), math.NewInt(1))

	err = k.AuthorizeMetaSwap(ctx, trader.String(), 1, math.NewInt(100), math.NewInt(1), sig[:64], pub)
	require.ErrorIs(t, err, types.ErrInvalidSignature)

	err = k.AuthorizeMetaSwap(ctx, trader.String(), 1, math.NewInt(100), math.NewInt(1), sig, pub[:32])
	require.ErrorIs(t, err, types.ErrInvalidSignature)

	// Garbage signature of the right length fails recovery.
	garbage := make([]byte, types.MetaSwapSignatureLength)
	err = k.AuthorizeMetaSwap(ctx, trader.String(), 1, math.NewInt(100), math.NewInt(1), garbage, pub)
	require.ErrorIs(t, err, types.ErrInvalidSignature)

	require.False(t, k.HasAuthorizationRecord(ctx, trader.String()))
}

// TestIsNonceUsed_ValueEquality verifies the query matches the stored
// nonce value exactly: an account that consumed nonce 42 answers false
// for any other value, while the presence accessor stays true.
func TestIsNonceUsed_ValueEquality(t *testing.T) {
	k, _, ctx := keepertest.AmmKeeper(t)
	trader := testAddr(2)

	require.False(t, k.IsNonceUsed(ctx, trader.String(), 42))
	require.False(t, k.HasAuthorizationRecord(ctx, trader.String()))

	k.MarkNonceUsed(ctx, trader.String(), 42)

	require.True(t, k.IsNonceUsed(ctx, trader.String(), 42))
	require.False(t, k.IsNonceUsed(ctx, trader.String(), 7))
	require.False(t, k.IsNonceUsed(ctx, trader.String(), 0))
	require.True(t, k.HasAuthorizationRecord(ctx, trader.String()))
}
