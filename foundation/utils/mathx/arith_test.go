// File: arith_test.go
// Title: Arithmetic Wrapper Tests
// Description: Tests for the arithmetic, bitwise and checked power wrappers.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-10
// Modified: 2026-09-10

package mathx

import (
	"math/big"
	"testing"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
)

func bi(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad test literal " + s)
	}
	return v
}

func TestBasicArithmetic(t *testing.T) {
	a, b := bi("100000000000000000000"), bi("-3")

	if got := Add(a, b).String(); got != "99999999999999999997" {
		t.Errorf("Add = %s", got)
	}
	if got := Subtract(a, b).String(); got != "100000000000000000003" {
		t.Errorf("Subtract = %s", got)
	}
	if got := Multiply(a, b).String(); got != "-300000000000000000000" {
		t.Errorf("Multiply = %s", got)
	}
	if got, _ := Divide(bi("-7"), bi("2")); got.String() != "-3" {
		t.Errorf("Divide(-7, 2) = %s, want -3", got)
	}
	if got, _ := Mod(bi("-7"), bi("3")); got.String() != "2" {
		t.Errorf("Mod(-7, 3) = %s, want 2", got)
	}
	if got := Abs(b).String(); got != "3" {
		t.Errorf("Abs = %s", got)
	}
	if got := Negate(b).String(); got != "3" {
		t.Errorf("Negate = %s", got)
	}
	if got := GCD(bi("-12"), bi("18")).String(); got != "6" {
		t.Errorf("GCD = %s", got)
	}
	if b.String() != "-3" {
		t.Error("arguments were modified")
	}
}

func TestDivisionByZero(t *testing.T) {
	if _, err := Divide(bi("1"), bi("0")); !mzwerror.HasCode(err, mzwerror.CodeDivisionByZero) {
		t.Errorf("Divide by zero error = %v", err)
	}
	if _, err := Mod(bi("1"), bi("0")); !mzwerror.IsValidation(err) {
		t.Errorf("Mod by zero error = %v", err)
	}
}

func TestSqrtAndFactorial(t *testing.T) {
	if got, _ := Sqrt(bi("1000000000000000000000")); got.String() != "31622776601" {
		t.Errorf("Sqrt = %s", got)
	}
	if _, err := Sqrt(bi("-4")); !mzwerror.IsValidation(err) {
		t.Errorf("Sqrt(-4) error = %v", err)
	}
	if got, _ := Factorial(20); got.String() != "2432902008176640000" {
		t.Errorf("Factorial(20) = %s", got)
	}
	if got, _ := Factorial(0); got.String() != "1" {
		t.Errorf("Factorial(0) = %s", got)
	}
	if _, err := Factorial(MaxFactorialInput + 1); !mzwerror.IsValidation(err) {
		t.Errorf("Factorial(max+1) error = %v", err)
	}
}

func TestPow(t *testing.T) {
	ceiling := bi("1000000")

	tests := []struct {
		name         string
		base, exp    string
		ceiling      *big.Int
		want         string
		wantOverflow bool
		wantInvalid  bool
	}{
		{"unchecked", "2", "100", nil, "1267650600228229401496703205376", false, false},
		{"within ceiling", "10", "6", ceiling, "1000000", false, false},
		{"just above", "10", "7", ceiling, "", true, false},
		{"pre-check rejects", "2", "1000000", ceiling, "", true, false},
		{"negative odd", "-3", "3", ceiling, "-27", false, false},
		{"negative even", "-3", "4", ceiling, "81", false, false},
		{"zero exponent", "12345", "0", ceiling, "1", false, false},
		{"zero base", "0", "99999999999", ceiling, "0", false, false},
		{"one base huge exponent", "1", "99999999999999999999", ceiling, "1", false, false},
		{"minus one odd", "-1", "99999999999999999999", ceiling, "-1", false, false},
		{"negative exponent", "2", "-1", ceiling, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pow(bi(tt.base), bi(tt.exp), tt.ceiling)
			switch {
			case tt.wantOverflow:
				if !mzwerror.IsOverflow(err) {
					t.Fatalf("Pow error = %v, want overflow", err)
				}
			case tt.wantInvalid:
				if !mzwerror.IsValidation(err) {
					t.Fatalf("Pow error = %v, want validation", err)
				}
			default:
				if err != nil {
					t.Fatalf("Pow unexpected error: %v", err)
				}
				if got.String() != tt.want {
					t.Errorf("Pow = %s, want %s", got, tt.want)
				}
			}
		})
	}
}

func TestCheckedPowMatchesExp(t *testing.T) {
	ceiling := new(big.Int).Lsh(big.NewInt(1), 4096)
	for base := int64(2); base <= 9; base++ {
		for exp := int64(0); exp <= 60; exp++ {
			want := new(big.Int).Exp(big.NewInt(base), big.NewInt(exp), nil)
			got, err := CheckedPow(big.NewInt(base), big.NewInt(exp), ceiling)
			if err != nil {
				t.Fatalf("CheckedPow(%d, %d) error = %v", base, exp, err)
			}
			if got.Cmp(want) != 0 {
				t.Fatalf("CheckedPow(%d, %d) = %s, want %s", base, exp, got, want)
			}
		}
	}
}

func TestBitwise(t *testing.T) {
	a, b := bi("12"), bi("10")
	tests := []struct {
		name string
		got  *big.Int
		want string
	}{
		{"and", And(a, b), "8"},
		{"or", Or(a, b), "14"},
		{"xor", Xor(a, b), "6"},
		{"not", Not(a), "-13"},
		{"shl", ShiftLeft(a, 70), "14167099448608935641088"},
		{"shr", ShiftRight(bi("-13"), 1), "-7"},
	}
	for _, tt := range tests {
		if tt.got.String() != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}
