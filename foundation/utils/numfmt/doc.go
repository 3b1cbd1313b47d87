// Package numfmt renders and parses big integers for display.
//
// Package: numfmt
// Title: Big-Integer Presentation
// Description: Grouped, scientific, compact, Roman and base-N renderings of
//              *big.Int plus a lenient parser accepting radix prefixes and
//              grouping separators. Used by the CLI, the explorer and the
//              calculator service; the data structures never format numbers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-17
// Modified: 2026-09-17
//
// Change History:
// - 2026-09-17 v0.1.0: Initial implementation
//
// Usage:
//
//	numfmt.Grouped(v, ",")       // "1,234,567"
//	numfmt.Scientific(v, 3)      // "1.23e+6"
//	numfmt.Compact(v)            // "1.2M"
//	numfmt.Roman(big.NewInt(14)) // "XIV"
//	numfmt.Parse("0xff")         // 255
package numfmt
