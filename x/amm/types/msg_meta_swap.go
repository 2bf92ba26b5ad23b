package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgMetaSwap{}

// MsgMetaSwap is a delegated ("gasless") swap. The relayer signs and
// broadcasts the transaction; the trader authorized the swap offline by
// signing the canonical digest of (nonce, amountIn, minAmountOut). The
// relayer is pure transport and never becomes the trading principal.
type MsgMetaSwap struct {
	Relayer      string   `json:"relayer"`
	Trader       string   `json:"trader"`
	AssetIn      string   `json:"asset_in"`
	AssetOut     string   `json:"asset_out"`
	AmountIn     math.Int `json:"amount_in"`
	MinAmountOut math.Int `json:"min_amount_out"`
	Nonce        uint64   `json:"nonce"`
	Signature    []byte   `json:"signature"`
	PubKey       []byte   `json:"pub_key"`
}

// NewMsgMetaSwap creates a new MsgMetaSwap instance
func NewMsgMetaSwap(relayer, trader, assetIn, assetOut string, amountIn, minAmountOut math.Int, nonce uint64, signature, pubKey []byte) *MsgMetaSwap {
	return &MsgMetaSwap{
		Relayer:      relayer,
		Trader:       trader,
		AssetIn:      assetIn,
		AssetOut:     assetOut,
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
		Nonce:        nonce,
		Signature:    signature,
		PubKey:       pubKey,
	}
}

func (msg *MsgMetaSwap) Reset()         { *msg = MsgMetaSwap{} }
func (msg *MsgMetaSwap) String() string { return "MsgMetaSwap" }
func (*MsgMetaSwap) ProtoMessage()      {}

// Route implements the sdk.Msg interface
func (msg MsgMetaSwap) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgMetaSwap) Type() string { return "meta_swap" }

// GetSigners implements the sdk.Msg interface. The relayer pays for and
// signs the enclosing transaction, not the trader.
func (msg MsgMetaSwap) GetSigners() []sdk.AccAddress {
	relayer, err := sdk.AccAddressFromBech32(msg.Relayer)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{relayer}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgMetaSwap) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgMetaSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Relayer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid relayer address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid trader address: %s", err)
	}
	if err := validateAssetPair(msg.AssetIn, msg.AssetOut); err != nil {
		return err
	}
	if msg.AmountIn.IsNil() || msg.AmountIn.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "amount in cannot be nil or negative")
	}
	if msg.AmountIn.IsZero() {
		return sdkerrors.Wrap(ErrZeroAmount, "amount in must be positive")
	}
	if msg.MinAmountOut.IsNil() || msg.MinAmountOut.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amount out must be non-negative")
	}
	if len(msg.Signature) != MetaSwapSignatureLength {
		return sdkerrors.Wrapf(ErrInvalidSignature, "signature must be %d bytes, got %d", MetaSwapSignatureLength, len(msg.Signature))
	}
	if len(msg.PubKey) != MetaSwapPubKeyLength {
		return sdkerrors.Wrapf(ErrInvalidSignature, "public key must be %d bytes, got %d", MetaSwapPubKeyLength, len(msg.PubKey))
	}
	return nil
}
