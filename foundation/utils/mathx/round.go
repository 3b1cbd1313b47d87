// File: round.go
// Title: Scale-and-Round
// Description: Decimal scaling of integers. Round snaps an integer to a
//              multiple of 10^places under a RoundingMode; Scale multiplies
//              or truncating-divides by a power of ten.
// Author: msto63
// Version: v0.3.0
// Created: 2026-09-16
// Modified: 2026-09-16
//
// Change History:
// - 2026-09-16 v0.3.0: Initial implementation

package mathx

import (
	"math/big"
	"strings"

	"github.com/msto63/mZW/foundation/core/errors"
)

// RoundingMode defines how a remainder is resolved when rounding
type RoundingMode int

const (
	// RoundingModeHalfUp rounds halves away from zero (commercial rounding)
	RoundingModeHalfUp RoundingMode = iota

	// RoundingModeHalfEven rounds halves to the even neighbour (banker's rounding)
	RoundingModeHalfEven

	// RoundingModeHalfDown rounds halves toward zero
	RoundingModeHalfDown

	// RoundingModeUp rounds away from zero
	RoundingModeUp

	// RoundingModeDown truncates toward zero
	RoundingModeDown
)

// String returns the mode name
func (m RoundingMode) String() string {
	switch m {
	case RoundingModeHalfUp:
		return "half-up"
	case RoundingModeHalfEven:
		return "half-even"
	case RoundingModeHalfDown:
		return "half-down"
	case RoundingModeUp:
		return "up"
	case RoundingModeDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseRoundingMode parses a mode name as produced by String
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "half-up", "halfup", "":
		return RoundingModeHalfUp, nil
	case "half-even", "halfeven", "bankers":
		return RoundingModeHalfEven, nil
	case "half-down", "halfdown":
		return RoundingModeHalfDown, nil
	case "up", "ceiling":
		return RoundingModeUp, nil
	case "down", "truncate":
		return RoundingModeDown, nil
	default:
		return RoundingModeHalfUp, errors.InvalidInput(errors.ModuleMathx, "ParseRoundingMode", s,
			"half-up, half-even, half-down, up or down")
	}
}

// PowerOfTen returns 10^n for n >= 0
func PowerOfTen(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// Round rounds v to the nearest multiple of 10^places under mode.
// places <= 0 returns a copy of v.
func Round(v *big.Int, places int, mode RoundingMode) *big.Int {
	if places <= 0 {
		return new(big.Int).Set(v)
	}

	unit := PowerOfTen(places)
	mag := new(big.Int).Abs(v)
	q, r := new(big.Int).QuoRem(mag, unit, new(big.Int))
	if r.Sign() != 0 && roundsAway(q, r, unit, mode) {
		q.Add(q, bigOne)
	}

	q.Mul(q, unit)
	if v.Sign() < 0 {
		q.Neg(q)
	}
	return q
}

// roundsAway decides whether the truncated magnitude q with remainder r
// moves one unit away from zero
func roundsAway(q, r, unit *big.Int, mode RoundingMode) bool {
	twice := new(big.Int).Lsh(r, 1)
	half := twice.Cmp(unit)
	switch mode {
	case RoundingModeUp:
		return true
	case RoundingModeDown:
		return false
	case RoundingModeHalfDown:
		return half > 0
	case RoundingModeHalfEven:
		return half > 0 || (half == 0 && !IsEven(q))
	default:
		return half >= 0
	}
}

// Scale returns v * 10^places; negative places divide, truncating toward zero
func Scale(v *big.Int, places int) *big.Int {
	switch {
	case places > 0:
		return new(big.Int).Mul(v, PowerOfTen(places))
	case places < 0:
		return new(big.Int).Quo(v, PowerOfTen(-places))
	default:
		return new(big.Int).Set(v)
	}
}
