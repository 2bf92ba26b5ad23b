package keeper

import (
	"encoding/binary"

	sdkerrors "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/zephyr-dex/zephyr/x/amm/types"
)

// GetNextPoolID returns the next pool ID and advances the counter.
// IDs start at 1; zero is never a valid pool ID.
func (k Keeper) GetNextPoolID(ctx sdk.Context) uint64 {
	store := k.getStore(ctx)
	next := uint64(1)
	if bz := store.Get(PoolCountKey); len(bz) == 8 {
		next = binary.BigEndian.Uint64(bz)
	}
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, next+1)
	store.Set(PoolCountKey, bz)
	return next
}

// SetNextPoolID seeds the pool ID counter. Used by genesis import.
func (k Keeper) SetNextPoolID(ctx sdk.Context, next uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, next)
	store.Set(PoolCountKey, bz)
}

// PeekNextPoolID returns the counter without advancing it.
func (k Keeper) PeekNextPoolID(ctx sdk.Context) uint64 {
	store := k.getStore(ctx)
	if bz := store.Get(PoolCountKey); len(bz) == 8 {
		return binary.BigEndian.Uint64(bz)
	}
	return 1
}

// GetPool retrieves a pool by ID
func (k Keeper) GetPool(ctx sdk.Context, id uint64) (ammtypes.Pool, bool) {
	store := k.getStore(ctx)
	bz := store.Get(PoolKey(id))
	if bz == nil {
		return ammtypes.Pool{}, false
	}
	var pool ammtypes.Pool
	if err := pool.Unmarshal(bz); err != nil {
		k.Logger(ctx).Error("corrupt pool record", "pool_id", id, "error", err)
		return ammtypes.Pool{}, false
	}
	return pool, true
}

// SetPool persists a pool record and its ordered-pair index entry.
func (k Keeper) SetPool(ctx sdk.Context, pool ammtypes.Pool) error {
	bz, err := pool.Marshal()
	if err != nil {
		return err
	}
	store := k.getStore(ctx)
	store.Set(PoolKey(pool.Id), bz)

	idBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(idBytes, pool.Id)
	store.Set(PoolByAssetsKey(pool.AssetA, pool.AssetB), idBytes)
	return nil
}

// LookupPool resolves the pool for an ordered asset pair. The pair is
// matched exactly as given; the reverse orientation is a different pool.
func (k Keeper) LookupPool(ctx sdk.Context, assetA, assetB string) (ammtypes.Pool, bool) {
	store := k.getStore(ctx)
	bz := store.Get(PoolByAssetsKey(assetA, assetB))
	if len(bz) != 8 {
		return ammtypes.Pool{}, false
	}
	return k.GetPool(ctx, binary.BigEndian.Uint64(bz))
}

// HasPool reports whether a pool exists for the ordered pair.
func (k Keeper) HasPool(ctx sdk.Context, assetA, assetB string) bool {
	store := k.getStore(ctx)
	return store.Has(PoolByAssetsKey(assetA, assetB))
}

// CreatePoolRecord assigns a fresh ID to the pool and persists it. It
// fails if the ordered pair is already registered.
func (k Keeper) CreatePoolRecord(ctx sdk.Context, assetA, assetB string, pool *ammtypes.Pool) error {
	if k.HasPool(ctx, assetA, assetB) {
		return sdkerrors.Wrapf(ammtypes.ErrPoolExists, "pool for pair (%s, %s) already exists", assetA, assetB)
	}
	pool.Id = k.GetNextPoolID(ctx)
	if err := k.SetPool(ctx, *pool); err != nil {
		return err
	}
	k.incrementPoolCount(ctx)
	k.metrics.PoolCreations.Inc()
	k.metrics.PoolsTotal.Set(float64(k.GetPoolCount(ctx)))
	return nil
}

// UpdatePool persists changes to an existing pool.
func (k Keeper) UpdatePool(ctx sdk.Context, pool ammtypes.Pool) error {
	store := k.getStore(ctx)
	if !store.Has(PoolKey(pool.Id)) {
		return sdkerrors.Wrapf(ammtypes.ErrPoolNotFound, "pool %d not found", pool.Id)
	}
	return k.SetPool(ctx, pool)
}

// GetPoolCount returns the number of live pools.
func (k Keeper) GetPoolCount(ctx sdk.Context) uint64 {
	store := k.getStore(ctx)
	if bz := store.Get(TotalPoolsCountKey); len(bz) == 8 {
		return binary.BigEndian.Uint64(bz)
	}
	return 0
}

func (k Keeper) setPoolCount(ctx sdk.Context, count uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, count)
	store.Set(TotalPoolsCountKey, bz)
}

func (k Keeper) incrementPoolCount(ctx sdk.Context) {
	k.setPoolCount(ctx, k.GetPoolCount(ctx)+1)
}

// IteratePools visits every pool in ID order. The callback returning true
// stops iteration. Iteration is capped at MaxIterationLimit records.
func (k Keeper) IteratePools(ctx sdk.Context, fn func(pool ammtypes.Pool) bool) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iterator.Close()

	count := 0
	for ; iterator.Valid() && count < MaxIterationLimit; iterator.Next() {
		var pool ammtypes.Pool
		if err := pool.Unmarshal(iterator.Value()); err != nil {
			k.Logger(ctx).Error("corrupt pool record during iteration", "error", err)
			continue
		}
		if fn(pool) {
			break
		}
		count++
	}
}

// GetAllPools returns every pool. Used by genesis export and queries.
func (k Keeper) GetAllPools(ctx sdk.Context) []ammtypes.Pool {
	pools := make([]ammtypes.Pool, 0)
	k.IteratePools(ctx, func(pool ammtypes.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools
}
