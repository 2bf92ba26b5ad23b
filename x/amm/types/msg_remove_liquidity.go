package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgRemoveLiquidity{}

// MsgRemoveLiquidity burns LP shares against a pool and withdraws the
// proportional reserves.
type MsgRemoveLiquidity struct {
	Provider string   `json:"provider"`
	AssetA   string   `json:"asset_a"`
	AssetB   string   `json:"asset_b"`
	Shares   math.Int `json:"shares"`
	MinA     math.Int `json:"min_a"`
	MinB     math.Int `json:"min_b"`
}

// NewMsgRemoveLiquidity creates a new MsgRemoveLiquidity instance
func NewMsgRemoveLiquidity(provider, assetA, assetB string, shares, minA, minB math.Int) *MsgRemoveLiquidity {
	return &MsgRemoveLiquidity{
		Provider: provider,
		AssetA:   assetA,
		AssetB:   assetB,
		Shares:   shares,
		MinA:     minA,
		MinB:     minB,
	}
}

func (msg *MsgRemoveLiquidity) Reset()         { *msg = MsgRemoveLiquidity{} }
func (msg *MsgRemoveLiquidity) String() string { return "MsgRemoveLiquidity" }
func (*MsgRemoveLiquidity) ProtoMessage()      {}

// Route implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) Type() string { return "remove_liquidity" }

// GetSigners implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if err := validateAssetPair(msg.AssetA, msg.AssetB); err != nil {
		return err
	}
	if msg.Shares.IsNil() || msg.Shares.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "shares cannot be nil or negative")
	}
	if msg.Shares.IsZero() {
		return sdkerrors.Wrap(ErrZeroAmount, "shares must be positive")
	}
	if msg.MinA.IsNil() || msg.MinB.IsNil() || msg.MinA.IsNegative() || msg.MinB.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amounts must be non-negative")
	}
	return nil
}
