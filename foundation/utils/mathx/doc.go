// Package mathx is the big-integer substrate of mZW.
//
// Package: mathx
// Title: Big-Integer Ingestion and Arithmetic
// Description: Normalizes big integers, decimal numeral strings and native
//              machine numbers into *big.Int, provides the natural comparator
//              used by every data structure, and offers thin arithmetic, bitwise
//              and scale-and-round wrappers with explicit validation and
//              overflow errors.
// Author: msto63
// Version: v0.3.0
// Created: 2026-09-04
// Modified: 2026-09-16
//
// Change History:
// - 2026-09-04 v0.1.0: Ingestion and comparator
// - 2026-09-10 v0.2.0: Arithmetic and bitwise wrappers, checked Pow
// - 2026-09-16 v0.3.0: Scale-and-round with rounding modes
//
// All functions return fresh values and never modify their arguments.
//
// Usage:
//
//	a, err := mathx.ToBigInt("123456789012345678901234567890")
//	b, _ := mathx.ToBigInt(42)
//
//	p, err := mathx.Pow(a, b, ceiling) // overflow error if p > ceiling
//	r := mathx.Round(big.NewInt(1250), 2, mathx.RoundingModeHalfEven) // 1200
//
// The safe-integer bounds (MaxSafeInteger, MinSafeInteger) are the bounds of
// an IEEE-754 double, 2^53-1. CheckSafe reports values outside them.
package mathx
