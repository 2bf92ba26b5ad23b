package keeper

import (
	"encoding/binary"
)

var (
	// PoolKeyPrefix prefixes pool records keyed by pool ID.
	PoolKeyPrefix = []byte{0x01}
	// PoolCountKey stores the next pool ID to assign.
	PoolCountKey = []byte{0x02}
	// TotalPoolsCountKey stores the number of live pools.
	TotalPoolsCountKey = []byte{0x03}
	// PoolByAssetsKeyPrefix prefixes the ordered-pair index. Pairs are
	// stored exactly as supplied: (a, b) and (b, a) address different
	// pools.
	PoolByAssetsKeyPrefix = []byte{0x04}
	// LPBalanceKeyPrefix prefixes per-account share balances. Shares are
	// a single ledger spanning all pools.
	LPBalanceKeyPrefix = []byte{0x05}
)

// MaxIterationLimit bounds store iteration in queries and invariants.
const MaxIterationLimit = 10000

// PoolKey returns the store key for a pool ID
func PoolKey(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return append(PoolKeyPrefix, bz...)
}

// PoolByAssetsKey returns the ordered-pair index key for (assetA, assetB).
// Asset names are length-prefixed so the key is unambiguous for any
// identifier contents.
func PoolByAssetsKey(assetA, assetB string) []byte {
	key := make([]byte, 0, len(PoolByAssetsKeyPrefix)+4+len(assetA)+len(assetB))
	key = append(key, PoolByAssetsKeyPrefix...)
	key = binary.BigEndian.AppendUint16(key, uint16(len(assetA)))
	key = append(key, assetA...)
	key = binary.BigEndian.AppendUint16(key, uint16(len(assetB)))
	key = append(key, assetB...)
	return key
}

// LPBalanceKey returns the share ledger key for an account
func LPBalanceKey(address string) []byte {
	return append(LPBalanceKeyPrefix, []byte(address)...)
}
