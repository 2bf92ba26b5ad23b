package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState captures the full module state: pools, the pool ID
// counter, the per-account share ledger, and consumed meta-swap nonces.
type GenesisState struct {
	Pools      []Pool        `json:"pools"`
	NextPoolId uint64        `json:"next_pool_id"`
	Balances   []LPBalance   `json:"balances"`
	Nonces     []NonceRecord `json:"nonces"`
	Paused     bool          `json:"paused"`
}

// LPBalance is one entry of the share ledger. Shares are tracked per
// account across all pools, not per pool.
type LPBalance struct {
	Address string   `json:"address"`
	Shares  math.Int `json:"shares"`
}

// NonceRecord marks an account's delegated-swap authorization as spent.
type NonceRecord struct {
	Address string `json:"address"`
	Nonce   uint64 `json:"nonce"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Pools:      []Pool{},
		NextPoolId: 1,
		Balances:   []LPBalance{},
		Nonces:     []NonceRecord{},
		Paused:     false,
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	seenIDs := make(map[uint64]bool, len(gs.Pools))
	seenPairs := make(map[string]bool, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("invalid pool %d: %w", pool.Id, err)
		}
		if pool.Id >= gs.NextPoolId {
			return fmt.Errorf("pool id %d not below next pool id %d", pool.Id, gs.NextPoolId)
		}
		if seenIDs[pool.Id] {
			return fmt.Errorf("duplicate pool id %d", pool.Id)
		}
		seenIDs[pool.Id] = true
		pair := pool.AssetA + "/" + pool.AssetB
		if seenPairs[pair] {
			return fmt.Errorf("duplicate pool pair %s", pair)
		}
		seenPairs[pair] = true
	}

	seenAddrs := make(map[string]bool, len(gs.Balances))
	for _, bal := range gs.Balances {
		if _, err := sdk.AccAddressFromBech32(bal.Address); err != nil {
			return fmt.Errorf("invalid balance address %q: %w", bal.Address, err)
		}
		if bal.Shares.IsNil() || bal.Shares.IsNegative() {
			return fmt.Errorf("invalid share balance for %s", bal.Address)
		}
		if seenAddrs[bal.Address] {
			return fmt.Errorf("duplicate balance entry for %s", bal.Address)
		}
		seenAddrs[bal.Address] = true
	}

	seenNonces := make(map[string]bool, len(gs.Nonces))
	for _, rec := range gs.Nonces {
		if _, err := sdk.AccAddressFromBech32(rec.Address); err != nil {
			return fmt.Errorf("invalid nonce address %q: %w", rec.Address, err)
		}
		if seenNonces[rec.Address] {
			return fmt.Errorf("duplicate nonce record for %s", rec.Address)
		}
		seenNonces[rec.Address] = true
	}

	return nil
}
