// File: arith.go
// Title: Arithmetic and Bitwise Wrappers
// Description: Thin delegates to math/big with validation (division by zero,
//              negative exponents and roots) and a checked power that fails
//              as soon as a partial product exceeds the caller's ceiling.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-10
// Modified: 2026-09-10
//
// Change History:
// - 2026-09-10 v0.2.0: Initial implementation

package mathx

import (
	"math/big"

	"github.com/msto63/mZW/foundation/core/errors"
)

// MaxFactorialInput bounds Factorial; 5000! already has 16326 digits
const MaxFactorialInput = 5000

var bigOne = big.NewInt(1)

// Add returns a+b
func Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

// Subtract returns a-b
func Subtract(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }

// Multiply returns a*b
func Multiply(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

// Divide returns a/b truncated toward zero
func Divide(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, errors.DivisionByZero(errors.ModuleMathx, "Divide")
	}
	return new(big.Int).Quo(a, b), nil
}

// Mod returns the Euclidean modulus a mod b, always in [0, |b|)
func Mod(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, errors.DivisionByZero(errors.ModuleMathx, "Mod")
	}
	return new(big.Int).Mod(a, b), nil
}

// Abs returns |a|
func Abs(a *big.Int) *big.Int { return new(big.Int).Abs(a) }

// Negate returns -a
func Negate(a *big.Int) *big.Int { return new(big.Int).Neg(a) }

// Sqrt returns the integer square root of a
func Sqrt(a *big.Int) (*big.Int, error) {
	if a.Sign() < 0 {
		return nil, errors.InvalidInput(errors.ModuleMathx, "Sqrt", a, "non-negative integer")
	}
	return new(big.Int).Sqrt(a), nil
}

// GCD returns the non-negative greatest common divisor of a and b
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// Factorial returns n! for 0 <= n <= MaxFactorialInput
func Factorial(n int64) (*big.Int, error) {
	if n < 0 || n > MaxFactorialInput {
		return nil, errors.OutOfRange(errors.ModuleMathx, "Factorial", n, 0, MaxFactorialInput)
	}
	if n < 2 {
		return big.NewInt(1), nil
	}
	return new(big.Int).MulRange(2, n), nil
}

// Pow returns base^exp. A nil ceiling disables the overflow check; otherwise
// the result must satisfy |result| <= ceiling.
func Pow(base, exp, ceiling *big.Int) (*big.Int, error) {
	if exp.Sign() < 0 {
		return nil, errors.InvalidInput(errors.ModuleMathx, "Pow", exp, "non-negative exponent")
	}
	if ceiling == nil {
		return new(big.Int).Exp(base, exp, nil), nil
	}
	return CheckedPow(base, exp, ceiling)
}

// CheckedPow computes base^exp by square-and-multiply and fails with an
// overflow error as soon as a partial product exceeds ceiling in magnitude.
// A bit-length pre-check rejects hopeless inputs before any multiplication.
func CheckedPow(base, exp, ceiling *big.Int) (*big.Int, error) {
	if exp.Sign() < 0 {
		return nil, errors.InvalidInput(errors.ModuleMathx, "CheckedPow", exp, "non-negative exponent")
	}

	mag := new(big.Int).Abs(base)
	negative := base.Sign() < 0 && exp.Bit(0) == 1

	switch {
	case exp.Sign() == 0:
		return checkCeiling(big.NewInt(1), ceiling)
	case mag.Sign() == 0:
		return new(big.Int), nil
	case mag.Cmp(bigOne) == 0:
		if negative {
			return big.NewInt(-1), nil
		}
		return big.NewInt(1), nil
	}

	// |base|^exp >= 2^((bitlen-1)*exp)
	lower := new(big.Int).Mul(big.NewInt(int64(mag.BitLen()-1)), exp)
	if lower.Cmp(big.NewInt(int64(ceiling.BitLen()))) >= 0 {
		return nil, errors.Overflow(errors.ModuleMathx, "Pow", ceiling)
	}

	result := big.NewInt(1)
	square := new(big.Int).Set(mag)
	e := new(big.Int).Set(exp)
	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			result.Mul(result, square)
			if result.Cmp(ceiling) > 0 {
				return nil, errors.Overflow(errors.ModuleMathx, "Pow", ceiling)
			}
		}
		e.Rsh(e, 1)
		if e.Sign() > 0 {
			square.Mul(square, square)
			if square.Cmp(ceiling) > 0 {
				return nil, errors.Overflow(errors.ModuleMathx, "Pow", ceiling)
			}
		}
	}
	if negative {
		result.Neg(result)
	}
	return result, nil
}

func checkCeiling(v, ceiling *big.Int) (*big.Int, error) {
	if new(big.Int).Abs(v).Cmp(ceiling) > 0 {
		return nil, errors.Overflow(errors.ModuleMathx, "Pow", ceiling)
	}
	return v, nil
}

// IsEven reports whether a is divisible by two
func IsEven(a *big.Int) bool { return a.Bit(0) == 0 }

// And returns a & b
func And(a, b *big.Int) *big.Int { return new(big.Int).And(a, b) }

// Or returns a | b
func Or(a, b *big.Int) *big.Int { return new(big.Int).Or(a, b) }

// Xor returns a ^ b
func Xor(a, b *big.Int) *big.Int { return new(big.Int).Xor(a, b) }

// Not returns ^a in two's complement, i.e. -a-1
func Not(a *big.Int) *big.Int { return new(big.Int).Not(a) }

// ShiftLeft returns a << n
func ShiftLeft(a *big.Int, n uint) *big.Int { return new(big.Int).Lsh(a, n) }

// ShiftRight returns a >> n, rounding toward negative infinity
func ShiftRight(a *big.Int, n uint) *big.Int { return new(big.Int).Rsh(a, n) }
