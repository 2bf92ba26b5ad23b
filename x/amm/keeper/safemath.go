package keeper

import (
	"math/big"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	ammtypes "github.com/zephyr-dex/zephyr/x/amm/types"
)

// maxInt256 is the exclusive upper bound for all pool arithmetic. Results
// at or above 2^256 are rejected rather than wrapped.
var maxInt256 = new(big.Int).Lsh(big.NewInt(1), 256)

func checkedResult(result *big.Int, op string) (math.Int, error) {
	if result.CmpAbs(maxInt256) >= 0 {
		return math.Int{}, sdkerrors.Wrapf(ammtypes.ErrOverflow, "%s result exceeds 256 bits", op)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeAdd returns a + b with overflow detection
func SafeAdd(a, b math.Int) (math.Int, error) {
	if a.IsNil() || b.IsNil() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "nil operand in addition")
	}
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	return checkedResult(result, "addition")
}

// SafeSub returns a - b, rejecting negative results
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.IsNil() || b.IsNil() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "nil operand in subtraction")
	}
	result := new(big.Int).Sub(a.BigInt(), b.BigInt())
	if result.Sign() < 0 {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrOverflow, "subtraction underflow")
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeMul returns a * b with overflow detection
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsNil() || b.IsNil() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "nil operand in multiplication")
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return checkedResult(result, "multiplication")
}

// SafeQuo returns a / b truncated toward zero, rejecting division by zero
func SafeQuo(a, b math.Int) (math.Int, error) {
	if a.IsNil() || b.IsNil() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "nil operand in division")
	}
	if b.IsZero() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "division by zero")
	}
	result := new(big.Int).Quo(a.BigInt(), b.BigInt())
	return math.NewIntFromBigInt(result), nil
}

// SafeMulDiv returns floor(a * b / c) with the intermediate product kept at
// full precision.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if a.IsNil() || b.IsNil() || c.IsNil() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "nil operand in mul-div")
	}
	if c.IsZero() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "division by zero")
	}
	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result := product.Quo(product, c.BigInt())
	return checkedResult(result, "mul-div")
}

// TwoStepSqrt approximates the integer square root of n with a fixed
// two-refinement Newton iteration: guess = n/2, then twice
// guess = (guess + n/guess) / 2. The result deliberately over-approximates
// sqrt(n) for large n; initial share minting depends on reproducing this
// exact sequence, so it must not be replaced with a converged square root.
func TwoStepSqrt(n math.Int) (math.Int, error) {
	if n.IsNil() || n.IsNegative() {
		return math.Int{}, sdkerrors.Wrap(ammtypes.ErrInvalidInput, "square root of nil or negative value")
	}
	if n.IsZero() {
		return math.ZeroInt(), nil
	}

	two := big.NewInt(2)
	nBig := n.BigInt()
	guess := new(big.Int).Quo(nBig, two)
	if guess.Sign() == 0 {
		// n in {1, 2, 3}; n/2 truncates to zero and cannot be refined.
		return n, nil
	}
	for i := 0; i < 2; i++ {
		quotient := new(big.Int).Quo(nBig, guess)
		guess.Add(guess, quotient)
		guess.Quo(guess, two)
	}
	return math.NewIntFromBigInt(guess), nil
}
