// File: bigint.go
// Title: Big-Integer Ingestion and Ordering
// Description: ToBigInt normalizes every accepted input form into a fresh
//              *big.Int; Comparator and Compare define the natural ordering.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-04
// Modified: 2026-09-04
//
// Change History:
// - 2026-09-04 v0.1.0: Initial implementation

package mathx

import (
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/msto63/mZW/foundation/core/errors"
)

const expectedInput = "big integer, decimal integer string or integral number"

var integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

var (
	maxSafe = new(big.Int).SetInt64(1<<53 - 1)
	minSafe = new(big.Int).Neg(maxSafe)
)

// Comparator is a three-way ordering over big integers returning -1, 0 or 1
type Comparator func(a, b *big.Int) int

// Compare is the natural ordering of big integers
func Compare(a, b *big.Int) int {
	return a.Cmp(b)
}

// MaxSafeInteger returns 2^53-1
func MaxSafeInteger() *big.Int {
	return new(big.Int).Set(maxSafe)
}

// MinSafeInteger returns -(2^53-1)
func MinSafeInteger() *big.Int {
	return new(big.Int).Set(minSafe)
}

// ToBigInt converts v into a fresh *big.Int.
//
// Accepted: *big.Int, big.Int, every signed and unsigned Go integer kind,
// integral float32/float64 values and strings of an optional sign followed
// by decimal digits (surrounding whitespace is ignored). Everything else is a
// validation error.
func ToBigInt(v any) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return nil, errors.InvalidInput(errors.ModuleMathx, "ToBigInt", "nil", expectedInput)
		}
		return new(big.Int).Set(x), nil
	case big.Int:
		return new(big.Int).Set(&x), nil
	case int:
		return big.NewInt(int64(x)), nil
	case int8:
		return big.NewInt(int64(x)), nil
	case int16:
		return big.NewInt(int64(x)), nil
	case int32:
		return big.NewInt(int64(x)), nil
	case int64:
		return big.NewInt(x), nil
	case uint:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case string:
		return fromString(x)
	default:
		return nil, errors.InvalidInput(errors.ModuleMathx, "ToBigInt", v, expectedInput)
	}
}

func fromFloat(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, errors.InvalidInput(errors.ModuleMathx, "ToBigInt", f, "integral number")
	}
	b, _ := big.NewFloat(f).Int(nil)
	return b, nil
}

func fromString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if !integerPattern.MatchString(s) {
		return nil, errors.InvalidFormat(errors.ModuleMathx, s, "optional sign followed by decimal digits")
	}
	b, ok := new(big.Int).SetString(strings.TrimPrefix(s, "+"), 10)
	if !ok {
		return nil, errors.InvalidFormat(errors.ModuleMathx, s, "decimal integer")
	}
	return b, nil
}

// ToInt64 converts v to int64, failing with a range error if it does not fit
func ToInt64(v *big.Int) (int64, error) {
	if v == nil || !v.IsInt64() {
		return 0, errors.OutOfRange(errors.ModuleMathx, "ToInt64", v, math.MinInt64, math.MaxInt64)
	}
	return v.Int64(), nil
}

// IsSafe reports whether v lies within [MinSafeInteger, MaxSafeInteger]
func IsSafe(v *big.Int) bool {
	return v.Cmp(maxSafe) <= 0 && v.Cmp(minSafe) >= 0
}

// CheckSafe returns an overflow error when v is outside the safe-integer bounds
func CheckSafe(v *big.Int) error {
	if IsSafe(v) {
		return nil
	}
	if v.Sign() > 0 {
		return errors.Overflow(errors.ModuleMathx, "CheckSafe", maxSafe)
	}
	return errors.Underflow(errors.ModuleMathx, "CheckSafe", minSafe)
}
