package nonce_test

import (
	"fmt"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/zephyr-dex/zephyr/x/shared/nonce"
)

type testErrors struct{}

func (testErrors) InvalidNonceError(msg string) error {
	return fmt.Errorf("invalid nonce: %s", msg)
}

func setupManager(t *testing.T) (*nonce.Manager, sdk.Context) {
	t.Helper()
	storeKey := storetypes.NewKVStoreKey("test")

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	return nonce.NewManager(storeKey, testErrors{}, "test"), ctx
}

// TestManager_PresenceBasedReplay verifies one record per account: once
// marked, every later assertion fails regardless of the nonce value.
func TestManager_PresenceBasedReplay(t *testing.T) {
	m, ctx := setupManager(t)

	require.NoError(t, m.AssertUnused(ctx, "alice", 1))
	require.False(t, m.IsUsed(ctx, "alice"))

	m.MarkUsed(ctx, "alice", 1)
	require.True(t, m.IsUsed(ctx, "alice"))

	require.Error(t, m.AssertUnused(ctx, "alice", 1))
	require.Error(t, m.AssertUnused(ctx, "alice", 2))
	require.Error(t, m.AssertUnused(ctx, "alice", 0))

	// Other accounts are unaffected.
	require.NoError(t, m.AssertUnused(ctx, "bob", 1))
}

// TestManager_StoredNonce verifies the recorded value is kept for audit.
func TestManager_StoredNonce(t *testing.T) {
	m, ctx := setupManager(t)

	_, ok := m.StoredNonce(ctx, "alice")
	require.False(t, ok)

	m.MarkUsed(ctx, "alice", 42)
	stored, ok := m.StoredNonce(ctx, "alice")
	require.True(t, ok)
	require.Equal(t, uint64(42), stored)
}

// TestManager_EmptyAccount verifies an empty account name is rejected.
func TestManager_EmptyAccount(t *testing.T) {
	m, ctx := setupManager(t)
	require.Error(t, m.AssertUnused(ctx, "", 1))
}

// TestManager_IterateRecords verifies iteration visits every record and
// honors early stop.
func TestManager_IterateRecords(t *testing.T) {
	m, ctx := setupManager(t)

	m.MarkUsed(ctx, "alice", 1)
	m.MarkUsed(ctx, "bob", 2)
	m.MarkUsed(ctx, "carol", 3)

	seen := map[string]uint64{}
	m.IterateRecords(ctx, func(account string, n uint64) bool {
		seen[account] = n
		return false
	})
	require.Equal(t, map[string]uint64{"alice": 1, "bob": 2, "carol": 3}, seen)

	var visits int
	m.IterateRecords(ctx, func(string, uint64) bool {
		visits++
		return true
	})
	require.Equal(t, 1, visits)
}
