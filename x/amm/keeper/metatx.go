package keeper

import (
	"bytes"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	ammtypes "github.com/zephyr-dex/zephyr/x/amm/types"
)

// ammErrorProvider adapts the module's error types to the shared nonce
// manager.
type ammErrorProvider struct{}

func (ammErrorProvider) InvalidNonceError(msg string) error {
	return sdkerrors.Wrap(ammtypes.ErrInvalidNonce, msg)
}

// AuthorizeMetaSwap verifies a delegated swap authorization and consumes
// the trader's nonce.
//
// The trader signs sha256(nonce || amountIn || minAmountOut) with a
// secp256k1 key; the 65-byte compact signature must recover to exactly
// the supplied 33-byte compressed public key. Replay checking runs before
// signature recovery, and the nonce is recorded only after the signature
// verifies, so a rejected signature leaves the trader free to retry.
func (k Keeper) AuthorizeMetaSwap(
	ctx sdk.Context,
	trader string,
	nonce uint64,
	amountIn, minAmountOut math.Int,
	signature, pubKey []byte,
) error {
	if len(signature) != ammtypes.MetaSwapSignatureLength {
		return sdkerrors.Wrapf(ammtypes.ErrInvalidSignature,
			"signature must be %d bytes, got %d", ammtypes.MetaSwapSignatureLength, len(signature))
	}
	if len(pubKey) != ammtypes.MetaSwapPubKeyLength {
		return sdkerrors.Wrapf(ammtypes.ErrInvalidSignature,
			"public key must be %d bytes, got %d", ammtypes.MetaSwapPubKeyLength, len(pubKey))
	}
	if amountIn.IsNil() || minAmountOut.IsNil() || amountIn.IsNegative() || minAmountOut.IsNegative() {
		return sdkerrors.Wrap(ammtypes.ErrInvalidInput, "invalid authorization amounts")
	}

	if err := k.nonces.AssertUnused(ctx, trader, nonce); err != nil {
		return err
	}

	digest := ammtypes.MetaSwapDigest(nonce, amountIn, minAmountOut)
	recovered, _, err := ecdsa.RecoverCompact(signature, digest[:])
	if err != nil {
		return sdkerrors.Wrapf(ammtypes.ErrInvalidSignature, "signature recovery failed: %s", err)
	}
	if !bytes.Equal(recovered.SerializeCompressed(), pubKey) {
		return sdkerrors.Wrap(ammtypes.ErrInvalidSignature, "recovered key does not match supplied key")
	}

	k.nonces.MarkUsed(ctx, trader, nonce)
	return nil
}

// ExecuteMetaSwap runs a relayer-submitted swap on behalf of the trader
// who signed it. Authorization and execution share one cache context, so
// a swap failure after a valid signature discards the nonce record along
// with everything else and the authorization stays spendable.
//
// The relayer never touches pool funds: the trader is both payer and
// payee of the underlying swap.
func (k Keeper) ExecuteMetaSwap(
	ctx sdk.Context,
	relayer, trader sdk.AccAddress,
	assetIn, assetOut string,
	amountIn, minAmountOut math.Int,
	nonce uint64,
	signature, pubKey []byte,
) (*ammtypes.SwapResult, error) {
	cacheCtx, write := ctx.CacheContext()

	if err := k.AuthorizeMetaSwap(cacheCtx, trader.String(), nonce, amountIn, minAmountOut, signature, pubKey); err != nil {
		return nil, err
	}
	result, err := k.ExecuteSwap(cacheCtx, trader, assetIn, assetOut, amountIn, minAmountOut)
	if err != nil {
		return nil, err
	}
	write()

	k.metrics.MetaSwapsTotal.Inc()

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		ammtypes.EventTypeMetaSwap,
		sdk.NewAttribute(ammtypes.AttributeKeyRelayer, relayer.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyTrader, trader.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyNonce, fmt.Sprintf("%d", nonce)),
		sdk.NewAttribute(ammtypes.AttributeKeyAssetIn, assetIn),
		sdk.NewAttribute(ammtypes.AttributeKeyAssetOut, assetOut),
		sdk.NewAttribute(ammtypes.AttributeKeyAmountIn, amountIn.String()),
		sdk.NewAttribute(ammtypes.AttributeKeyAmountOut, result.AmountOut.String()),
	))

	k.Logger(ctx).Info("meta swap executed",
		"relayer", relayer.String(),
		"trader", trader.String(),
		"nonce", nonce,
		"amount_in", amountIn.String(),
		"amount_out", result.AmountOut.String(),
	)

	return result, nil
}

// IsNonceUsed reports whether the account's consumed authorization record
// carries exactly the queried nonce value. An account that consumed a
// different nonce answers false; use HasAuthorizationRecord to ask whether
// the account has ever authorized a delegated swap at all.
func (k Keeper) IsNonceUsed(ctx sdk.Context, account string, nonce uint64) bool {
	stored, ok := k.nonces.StoredNonce(ctx, account)
	return ok && stored == nonce
}

// HasAuthorizationRecord reports whether the account has consumed its
// delegated-swap authorization, regardless of the nonce value it carried.
func (k Keeper) HasAuthorizationRecord(ctx sdk.Context, account string) bool {
	return k.nonces.IsUsed(ctx, account)
}

// StoredNonce returns the recorded nonce for an account, if any.
func (k Keeper) StoredNonce(ctx sdk.Context, account string) (uint64, bool) {
	return k.nonces.StoredNonce(ctx, account)
}

// MarkNonceUsed records a consumed authorization directly. Used by genesis
// import.
func (k Keeper) MarkNonceUsed(ctx sdk.Context, account string, nonce uint64) {
	k.nonces.MarkUsed(ctx, account, nonce)
}

// IterateNonceRecords visits every consumed authorization record.
func (k Keeper) IterateNonceRecords(ctx sdk.Context, fn func(account string, nonce uint64) bool) {
	k.nonces.IterateRecords(ctx, fn)
}
