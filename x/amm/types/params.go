package types

// Swap fee parameters. The fee tier is fixed protocol-wide: 30 basis
// points of the input amount, retained inside the pool reserves rather
// than collected into a separate vault.
const (
	// SwapFeeBps is the swap fee in basis points.
	SwapFeeBps = 30

	// BpsDenominator is the basis point scale used by the fee math.
	BpsDenominator = 10_000
)
