package types

import (
	"crypto/sha256"
	"encoding/binary"

	"cosmossdk.io/math"
)

const (
	// MetaSwapSignatureLength is the compact signature size: one
	// recovery header byte followed by R and S (32 bytes each).
	MetaSwapSignatureLength = 65

	// MetaSwapPubKeyLength is the compressed secp256k1 public key size.
	MetaSwapPubKeyLength = 33
)

// MetaSwapDigest builds the canonical 32-byte message a trader signs to
// authorize a delegated swap: sha256 over the fixed-width encodings of
// nonce (8 bytes big-endian), amountIn and minAmountOut (32 bytes
// big-endian each), concatenated in that order.
//
// Asset identifiers are deliberately absent from the digest; asset and
// amount validity are re-checked by the swap engine after authorization.
func MetaSwapDigest(nonce uint64, amountIn, minAmountOut math.Int) [32]byte {
	var msg [8 + 32 + 32]byte
	binary.BigEndian.PutUint64(msg[0:8], nonce)
	amountIn.BigInt().FillBytes(msg[8:40])
	minAmountOut.BigInt().FillBytes(msg[40:72])
	return sha256.Sum256(msg[:])
}
