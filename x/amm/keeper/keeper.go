package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	ammtypes "github.com/zephyr-dex/zephyr/x/amm/types"
	"github.com/zephyr-dex/zephyr/x/shared/nonce"
)

// Keeper of the amm store
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper ammtypes.BankKeeper
	authority  string

	nonces  *nonce.Manager
	metrics *AMMMetrics

	// moduleAddress caches the module account address used as the pool
	// reserve vault.
	moduleAddress sdk.AccAddress
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper ammtypes.BankKeeper,
	authority string,
) *Keeper {
	k := &Keeper{
		storeKey:      key,
		bankKeeper:    bankKeeper,
		authority:     authority,
		metrics:       GetAMMMetrics(),
		moduleAddress: authtypes.NewModuleAddress(ammtypes.ModuleName),
	}
	k.nonces = nonce.NewManager(key, ammErrorProvider{}, ammtypes.ModuleName)
	return k
}

// GetAuthority returns the account authorized to pause and unpause trading.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// GetModuleAddress returns the module account holding all pool reserves.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return k.moduleAddress
}

// Logger returns a module-tagged logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+ammtypes.ModuleName)
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
