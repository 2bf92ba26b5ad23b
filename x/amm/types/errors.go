package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors.
//
// Codes 1 through 10 form the external error surface and are stable:
// clients and relayers match on them, so they must never be renumbered.
// Codes 11 and up are internal conditions and may grow.
var (
	ErrNotAuthorized         = errors.Register(ModuleName, 1, "not authorized")
	ErrInvalidNonce          = errors.Register(ModuleName, 2, "invalid nonce")
	ErrSlippage              = errors.Register(ModuleName, 3, "slippage limit exceeded")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 4, "insufficient liquidity")
	ErrIdenticalAssets       = errors.Register(ModuleName, 5, "identical assets")
	ErrZeroAmount            = errors.Register(ModuleName, 6, "amount cannot be zero")
	ErrInsufficientBalance   = errors.Register(ModuleName, 7, "insufficient balance")
	ErrPoolExists            = errors.Register(ModuleName, 8, "pool already exists")
	ErrPoolNotFound          = errors.Register(ModuleName, 9, "pool not found")
	ErrInvalidSignature      = errors.Register(ModuleName, 10, "invalid signature")

	ErrInvalidInput       = errors.Register(ModuleName, 11, "invalid input")
	ErrOverflow           = errors.Register(ModuleName, 12, "arithmetic overflow")
	ErrModulePaused       = errors.Register(ModuleName, 13, "module is paused")
	ErrInvariantViolation = errors.Register(ModuleName, 14, "invariant violation")
	ErrInvalidAddress     = errors.Register(ModuleName, 15, "invalid address")
)
