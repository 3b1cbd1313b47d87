// File: format.go
// Title: Number Rendering
// Description: Grouped, scientific, compact and base-N renderings, plus
//              digit abbreviation and padding for aligned columns.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-17
// Modified: 2026-09-17
//
// Change History:
// - 2026-09-17 v0.1.0: Initial implementation

package numfmt

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/msto63/mZW/foundation/core/errors"
	"github.com/msto63/mZW/foundation/utils/mathx"
)

// Style names a rendering accepted by Format
type Style string

const (
	StylePlain      Style = "plain"
	StyleGrouped    Style = "grouped"
	StyleScientific Style = "scientific"
	StyleCompact    Style = "compact"
	StyleRoman      Style = "roman"
	StyleHex        Style = "hex"
	StyleBinary     Style = "binary"
)

// Format renders v in the named style
func Format(v *big.Int, style Style) (string, error) {
	switch style {
	case StylePlain, "":
		return v.String(), nil
	case StyleGrouped:
		return Grouped(v, ","), nil
	case StyleScientific:
		return Scientific(v, 6), nil
	case StyleCompact:
		return Compact(v), nil
	case StyleRoman:
		return Roman(v)
	case StyleHex:
		return Base(v, 16)
	case StyleBinary:
		return Base(v, 2)
	default:
		return "", errors.InvalidInput(errors.ModuleNumfmt, "Format", style,
			"plain, grouped, scientific, compact, roman, hex or binary")
	}
}

// Grouped inserts sep between groups of three digits
func Grouped(v *big.Int, sep string) string {
	digits := new(big.Int).Abs(v).String()
	var b strings.Builder
	if v.Sign() < 0 {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Scientific renders v as d.ddd...e+N with the given number of significant
// digits, rounding half up. Values with no more digits than requested keep
// all of them.
func Scientific(v *big.Int, digits int) string {
	if digits < 1 {
		digits = 1
	}
	if v.Sign() == 0 {
		return "0e+0"
	}

	mag := new(big.Int).Abs(v)
	s := mag.String()
	exp := len(s) - 1
	if len(s) > digits {
		rounded := mathx.Round(mag, len(s)-digits, mathx.RoundingModeHalfUp).String()
		if len(rounded) > len(s) {
			exp++
		}
		s = rounded[:digits]
	}
	s = strings.TrimRight(s, "0")
	if s == "" {
		s = "0"
	}

	mantissa := s[:1]
	if len(s) > 1 {
		mantissa += "." + s[1:]
	}
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%se+%d", sign, mantissa, exp)
}

var compactUnits = []struct {
	suffix string
	zeros  int
}{
	{"T", 12},
	{"B", 9},
	{"M", 6},
	{"K", 3},
}

// Compact renders v with a K, M, B or T suffix and one truncated decimal.
// Magnitudes of 10^15 and more fall back to Scientific with 3 digits.
func Compact(v *big.Int) string {
	mag := new(big.Int).Abs(v)
	if len(mag.String()) > 15 {
		return Scientific(v, 3)
	}
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
	}
	for _, u := range compactUnits {
		unit := mathx.PowerOfTen(u.zeros)
		if mag.Cmp(unit) < 0 {
			continue
		}
		tenths := new(big.Int).Quo(mag, mathx.PowerOfTen(u.zeros-1))
		whole, frac := new(big.Int).QuoRem(tenths, big.NewInt(10), new(big.Int))
		if frac.Sign() == 0 {
			return sign + whole.String() + u.suffix
		}
		return fmt.Sprintf("%s%s.%s%s", sign, whole, frac, u.suffix)
	}
	return v.String()
}

// Base renders v in the given base (2 to 36) with lowercase digits
func Base(v *big.Int, base int) (string, error) {
	if base < 2 || base > 36 {
		return "", errors.OutOfRange(errors.ModuleNumfmt, "Base", base, 2, 36)
	}
	return v.Text(base), nil
}

// Abbreviate shortens a decimal rendering longer than maxDigits to
// "head...tail (N digits)". The result keeps the sign.
func Abbreviate(v *big.Int, maxDigits int) string {
	s := v.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if maxDigits < 8 || len(s) <= maxDigits {
		return sign + s
	}
	keep := (maxDigits - 3) / 2
	return fmt.Sprintf("%s%s...%s (%d digits)", sign, s[:keep], s[len(s)-keep:], len(s))
}

// PadLeft pads s with pad up to width runes
func PadLeft(s string, width int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(string(pad), width-n) + s
}
