package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterLegacyAminoCodec registers the module's message types on the
// given amino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgAddLiquidity{}, "amm/AddLiquidity", nil)
	cdc.RegisterConcrete(&MsgRemoveLiquidity{}, "amm/RemoveLiquidity", nil)
	cdc.RegisterConcrete(&MsgSwap{}, "amm/Swap", nil)
	cdc.RegisterConcrete(&MsgMetaSwap{}, "amm/MetaSwap", nil)
}

// ModuleCdc is the module-level amino codec used for sign bytes.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)
	cryptocodec.RegisterCrypto(ModuleCdc)
	sdk.RegisterLegacyAminoCodec(ModuleCdc)
}
