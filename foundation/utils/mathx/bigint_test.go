// File: bigint_test.go
// Title: Ingestion and Ordering Tests
// Description: Tests for ToBigInt, the comparator and the safe-integer checks.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-04
// Modified: 2026-09-04

package mathx

import (
	"math"
	"math/big"
	"testing"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
)

func TestToBigInt(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{"int", 42, "42", false},
		{"negative int64", int64(-7), "-7", false},
		{"uint64 max", uint64(math.MaxUint64), "18446744073709551615", false},
		{"int8", int8(-128), "-128", false},
		{"big pointer", huge, "123456789012345678901234567890", false},
		{"big value", *big.NewInt(5), "5", false},
		{"string", "123456789012345678901234567890", "123456789012345678901234567890", false},
		{"string with plus", "+17", "17", false},
		{"string with minus", "-17", "-17", false},
		{"string padded", "  99 ", "99", false},
		{"integral float", 3.0, "3", false},
		{"negative integral float32", float32(-8), "-8", false},
		{"fractional float", 3.5, "", true},
		{"NaN", math.NaN(), "", true},
		{"infinity", math.Inf(1), "", true},
		{"decimal string", "1.5", "", true},
		{"hex string", "0x10", "", true},
		{"empty string", "", "", true},
		{"sign only", "-", "", true},
		{"nil big", (*big.Int)(nil), "", true},
		{"bool", true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBigInt(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ToBigInt(%v) = %v, want error", tt.input, got)
				}
				if !mzwerror.IsValidation(err) {
					t.Errorf("ToBigInt(%v) error %v is not a validation error", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToBigInt(%v) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ToBigInt(%v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestToBigIntCopies(t *testing.T) {
	orig := big.NewInt(10)
	got, _ := ToBigInt(orig)
	got.SetInt64(11)
	if orig.Int64() != 10 {
		t.Errorf("ToBigInt aliased its argument: %s", orig)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b int64
		want int
	}{
		{1, 2, -1},
		{2, 2, 0},
		{-1, -2, 1},
	}
	for _, tt := range tests {
		if got := Compare(big.NewInt(tt.a), big.NewInt(tt.b)); got != tt.want {
			t.Errorf("Compare(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSafeBounds(t *testing.T) {
	if got := MaxSafeInteger().String(); got != "9007199254740991" {
		t.Errorf("MaxSafeInteger() = %s", got)
	}
	if got := MinSafeInteger().String(); got != "-9007199254740991" {
		t.Errorf("MinSafeInteger() = %s", got)
	}

	MaxSafeInteger().SetInt64(0)
	if MaxSafeInteger().Sign() == 0 {
		t.Error("MaxSafeInteger() returned shared state")
	}

	above := new(big.Int).Add(MaxSafeInteger(), big.NewInt(1))
	below := new(big.Int).Sub(MinSafeInteger(), big.NewInt(1))

	if err := CheckSafe(MaxSafeInteger()); err != nil {
		t.Errorf("CheckSafe(max) = %v", err)
	}
	if err := CheckSafe(above); !mzwerror.HasCode(err, mzwerror.CodeOverflow) {
		t.Errorf("CheckSafe(max+1) = %v, want OVERFLOW", err)
	}
	if err := CheckSafe(below); !mzwerror.HasCode(err, mzwerror.CodeUnderflow) {
		t.Errorf("CheckSafe(min-1) = %v, want UNDERFLOW", err)
	}
	if IsSafe(above) {
		t.Error("IsSafe(max+1) = true")
	}
}

func TestToInt64(t *testing.T) {
	if v, err := ToInt64(big.NewInt(-5)); err != nil || v != -5 {
		t.Errorf("ToInt64(-5) = %d, %v", v, err)
	}
	tooBig := new(big.Int).Lsh(big.NewInt(1), 70)
	if _, err := ToInt64(tooBig); !mzwerror.IsValidation(err) {
		t.Errorf("ToInt64(2^70) error = %v", err)
	}
}
