// File: roman.go
// Title: Roman Numerals
// Description: Conversion between integers in [1, 3999] and canonical Roman
//              numerals.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-17
// Modified: 2026-09-17
//
// Change History:
// - 2026-09-17 v0.1.0: Initial implementation

package numfmt

import (
	"math/big"
	"strings"

	"github.com/msto63/mZW/foundation/core/errors"
)

const maxRoman = 3999

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman renders v as a Roman numeral; v must lie in [1, 3999]
func Roman(v *big.Int) (string, error) {
	if !v.IsInt64() || v.Int64() < 1 || v.Int64() > maxRoman {
		return "", errors.OutOfRange(errors.ModuleNumfmt, "Roman", v, 1, maxRoman)
	}
	n := int(v.Int64())
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String(), nil
}

// FromRoman parses a canonical Roman numeral (case-insensitive)
func FromRoman(s string) (*big.Int, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == "" {
		return nil, errors.InvalidFormat(errors.ModuleNumfmt, s, "Roman numeral")
	}

	total, rest := 0, upper
	for _, r := range romanTable {
		for strings.HasPrefix(rest, r.symbol) {
			total += r.value
			rest = rest[len(r.symbol):]
		}
	}
	if rest != "" || total < 1 || total > maxRoman {
		return nil, errors.InvalidFormat(errors.ModuleNumfmt, s, "Roman numeral")
	}

	// reject non-canonical forms such as IIII or VX
	v := big.NewInt(int64(total))
	if canonical, _ := Roman(v); canonical != upper {
		return nil, errors.InvalidFormat(errors.ModuleNumfmt, s, "canonical Roman numeral")
	}
	return v, nil
}
