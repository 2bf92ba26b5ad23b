package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/zephyr-dex/zephyr/x/amm/types"
)

// InitGenesis seeds module state from a validated genesis state.
func (k Keeper) InitGenesis(ctx sdk.Context, state ammtypes.GenesisState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("invalid amm genesis: %w", err)
	}

	for _, pool := range state.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
	}
	k.SetNextPoolID(ctx, state.NextPoolId)
	k.setPoolCount(ctx, uint64(len(state.Pools)))

	for _, balance := range state.Balances {
		if err := k.SetLPBalance(ctx, balance.Address, balance.Shares); err != nil {
			return err
		}
	}
	for _, record := range state.Nonces {
		k.MarkNonceUsed(ctx, record.Address, record.Nonce)
	}
	k.SetPaused(ctx, state.Paused)

	k.metrics.PoolsTotal.Set(float64(len(state.Pools)))
	return nil
}

// ExportGenesis dumps module state.
func (k Keeper) ExportGenesis(ctx sdk.Context) *ammtypes.GenesisState {
	state := ammtypes.GenesisState{
		Pools:      k.GetAllPools(ctx),
		NextPoolId: k.PeekNextPoolID(ctx),
		Balances:   []ammtypes.LPBalance{},
		Nonces:     []ammtypes.NonceRecord{},
		Paused:     k.IsPaused(ctx),
	}

	k.IterateLPBalances(ctx, func(address string, balance math.Int) bool {
		state.Balances = append(state.Balances, ammtypes.LPBalance{Address: address, Shares: balance})
		return false
	})
	k.IterateNonceRecords(ctx, func(account string, nonce uint64) bool {
		state.Nonces = append(state.Nonces, ammtypes.NonceRecord{Address: account, Nonce: nonce})
		return false
	})
	return &state
}
