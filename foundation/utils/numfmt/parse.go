// File: parse.go
// Title: Lenient Integer Parsing
// Description: Parses user-typed integers: optional sign, 0x/0o/0b prefixes,
//              and "_", "," or " " digit grouping.
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
	"github.com/msto63/mZW/foundation/utils/mathx"
)

var groupingReplacer = strings.NewReplacer("_", "", ",", "", " ", "")

// Parse converts s into a big integer
func Parse(s string) (*big.Int, error) {
	clean := groupingReplacer.Replace(strings.TrimSpace(s))

	sign := ""
	if strings.HasPrefix(clean, "-") || strings.HasPrefix(clean, "+") {
		sign, clean = clean[:1], clean[1:]
	}

	base := 0
	lower := strings.ToLower(clean)
	switch {
	case strings.HasPrefix(lower, "0x"):
		base = 16
	case strings.HasPrefix(lower, "0o"):
		base = 8
	case strings.HasPrefix(lower, "0b"):
		base = 2
	}
	if base == 0 {
		return mathx.ToBigInt(sign + clean)
	}

	digits := clean[2:]
	v, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" {
		return nil, errors.InvalidFormat(errors.ModuleNumfmt, s, "integer with optional 0x, 0o or 0b prefix")
	}
	if sign == "-" {
		v.Neg(v)
	}
	return v, nil
}
