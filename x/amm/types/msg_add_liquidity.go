package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgAddLiquidity{}

// MsgAddLiquidity deposits both assets of an ordered pair into a pool,
// creating the pool on first deposit.
type MsgAddLiquidity struct {
	Provider string   `json:"provider"`
	AssetA   string   `json:"asset_a"`
	AssetB   string   `json:"asset_b"`
	DesiredA math.Int `json:"desired_a"`
	DesiredB math.Int `json:"desired_b"`
	MinA     math.Int `json:"min_a"`
	MinB     math.Int `json:"min_b"`
}

// NewMsgAddLiquidity creates a new MsgAddLiquidity instance
func NewMsgAddLiquidity(provider, assetA, assetB string, desiredA, desiredB, minA, minB math.Int) *MsgAddLiquidity {
	return &MsgAddLiquidity{
		Provider: provider,
		AssetA:   assetA,
		AssetB:   assetB,
		DesiredA: desiredA,
		DesiredB: desiredB,
		MinA:     minA,
		MinB:     minB,
	}
}

func (msg *MsgAddLiquidity) Reset()         { *msg = MsgAddLiquidity{} }
func (msg *MsgAddLiquidity) String() string { return "MsgAddLiquidity" }
func (*MsgAddLiquidity) ProtoMessage()      {}

// Route implements the sdk.Msg interface
func (msg MsgAddLiquidity) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgAddLiquidity) Type() string { return "add_liquidity" }

// GetSigners implements the sdk.Msg interface
func (msg MsgAddLiquidity) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgAddLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgAddLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if err := validateAssetPair(msg.AssetA, msg.AssetB); err != nil {
		return err
	}
	if msg.DesiredA.IsNil() || msg.DesiredB.IsNil() {
		return sdkerrors.Wrap(ErrInvalidInput, "desired amounts cannot be nil")
	}
	if msg.DesiredA.IsNegative() || msg.DesiredB.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "desired amounts cannot be negative")
	}
	if msg.DesiredA.IsZero() || msg.DesiredB.IsZero() {
		return sdkerrors.Wrap(ErrZeroAmount, "desired amounts must be positive")
	}
	if msg.MinA.IsNil() || msg.MinB.IsNil() || msg.MinA.IsNegative() || msg.MinB.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amounts must be non-negative")
	}
	return nil
}

// validateAssetPair rejects empty, oversized, or identical asset names.
func validateAssetPair(assetA, assetB string) error {
	if assetA == "" || assetB == "" {
		return sdkerrors.Wrap(ErrInvalidInput, "asset identifiers cannot be empty")
	}
	if len(assetA) > MaxAssetLength || len(assetB) > MaxAssetLength {
		return sdkerrors.Wrapf(ErrInvalidInput, "asset identifier exceeds %d bytes", MaxAssetLength)
	}
	if assetA == assetB {
		return sdkerrors.Wrap(ErrIdenticalAssets, "assets must be different")
	}
	return nil
}
