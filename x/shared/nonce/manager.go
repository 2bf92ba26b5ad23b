// Package nonce provides shared single-use nonce management for delegated
// message authorization. A module records one nonce per account; any later
// authorization attempt by the same account fails regardless of the nonce
// value it carries.
package nonce

import (
	"encoding/binary"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RecordPrefix is the prefix for consumed authorization records.
const RecordPrefix = "metanonce"

// ErrorProvider allows modules to provide their own error types while using
// shared nonce logic.
type ErrorProvider interface {
	// InvalidNonceError returns an error for a rejected nonce with the given message
	InvalidNonceError(msg string) error
}

// Manager tracks consumed delegated-authorization nonces per account.
//
// Replay protection is presence-based: the store holds at most one record
// per account, written when the account's first delegated authorization is
// accepted. AssertUnused rejects any account that already has a record, so
// an account can authorize exactly one delegated operation over its
// lifetime. The stored nonce value is kept for audit only and never
// compared against incoming nonces.
type Manager struct {
	storeKey      storetypes.StoreKey
	errorProvider ErrorProvider
	moduleName    string
}

// NewManager creates a new nonce manager for a module.
// storeKey: the module's store key for persistence
// errorProvider: module-specific error type provider
// moduleName: the module name (used in error messages)
func NewManager(storeKey storetypes.StoreKey, errorProvider ErrorProvider, moduleName string) *Manager {
	return &Manager{
		storeKey:      storeKey,
		errorProvider: errorProvider,
		moduleName:    moduleName,
	}
}

// encodeNonce encodes a uint64 nonce to bytes
func encodeNonce(n uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, n)
	return bz
}

// decodeNonce decodes bytes to a uint64 nonce
func decodeNonce(bz []byte) uint64 {
	if len(bz) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// recordKey generates the store key for an account's consumed record
func (m *Manager) recordKey(account string) []byte {
	return []byte(fmt.Sprintf("%s/%s", RecordPrefix, account))
}

// AssertUnused returns an error if the account has already consumed a
// delegated authorization. The incoming nonce value plays no part in the
// decision; it only appears in the error message.
func (m *Manager) AssertUnused(ctx sdk.Context, account string, nonce uint64) error {
	if account == "" {
		return m.errorProvider.InvalidNonceError("account missing")
	}
	store := ctx.KVStore(m.storeKey)
	if bz := store.Get(m.recordKey(account)); bz != nil {
		return m.errorProvider.InvalidNonceError(fmt.Sprintf(
			"replay rejected: account %s already consumed nonce %d (incoming %d)",
			account, decodeNonce(bz), nonce))
	}
	return nil
}

// MarkUsed records the account's authorization as spent. Callers must have
// verified the authorization before marking; a marked account can never
// authorize again.
func (m *Manager) MarkUsed(ctx sdk.Context, account string, nonce uint64) {
	store := ctx.KVStore(m.storeKey)
	store.Set(m.recordKey(account), encodeNonce(nonce))
}

// IsUsed reports whether the account has a consumed record.
func (m *Manager) IsUsed(ctx sdk.Context, account string) bool {
	store := ctx.KVStore(m.storeKey)
	return store.Has(m.recordKey(account))
}

// StoredNonce returns the nonce value recorded for the account and whether
// a record exists.
func (m *Manager) StoredNonce(ctx sdk.Context, account string) (uint64, bool) {
	store := ctx.KVStore(m.storeKey)
	bz := store.Get(m.recordKey(account))
	if bz == nil {
		return 0, false
	}
	return decodeNonce(bz), true
}

// IterateRecords visits every consumed record. The callback returning true
// stops iteration.
func (m *Manager) IterateRecords(ctx sdk.Context, fn func(account string, nonce uint64) bool) {
	store := ctx.KVStore(m.storeKey)
	prefix := []byte(RecordPrefix + "/")
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		account := string(iterator.Key()[len(prefix):])
		if fn(account, decodeNonce(iterator.Value())) {
			break
		}
	}
}
