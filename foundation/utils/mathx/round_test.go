// File: round_test.go
// Title: Scale-and-Round Tests
// Description: Tests for Round and Scale across all rounding modes.
// Author: msto63
// Version: v0.3.0
// Created: 2026-09-16
// Modified: 2026-09-16

package mathx

import (
	"math/big"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		v      int64
		places int
		mode   RoundingMode
		want   int64
	}{
		{1249, 2, RoundingModeHalfUp, 1200},
		{1250, 2, RoundingModeHalfUp, 1300},
		{-1250, 2, RoundingModeHalfUp, -1300},
		{1250, 2, RoundingModeHalfEven, 1200},
		{1350, 2, RoundingModeHalfEven, 1400},
		{1251, 2, RoundingModeHalfEven, 1300},
		{1250, 2, RoundingModeHalfDown, 1200},
		{1251, 2, RoundingModeHalfDown, 1300},
		{1201, 2, RoundingModeUp, 1300},
		{-1201, 2, RoundingModeUp, -1300},
		{1299, 2, RoundingModeDown, 1200},
		{-1299, 2, RoundingModeDown, -1200},
		{1200, 2, RoundingModeUp, 1200},
		{49, 2, RoundingModeHalfUp, 0},
		{1234, 0, RoundingModeUp, 1234},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got := Round(big.NewInt(tt.v), tt.places, tt.mode)
			if got.Int64() != tt.want {
				t.Errorf("Round(%d, %d, %s) = %s, want %d", tt.v, tt.places, tt.mode, got, tt.want)
			}
		})
	}
}

func TestScale(t *testing.T) {
	if got := Scale(big.NewInt(12), 3).Int64(); got != 12000 {
		t.Errorf("Scale(12, 3) = %d", got)
	}
	if got := Scale(big.NewInt(-12345), -2).Int64(); got != -123 {
		t.Errorf("Scale(-12345, -2) = %d", got)
	}
	if got := Scale(big.NewInt(7), 0).Int64(); got != 7 {
		t.Errorf("Scale(7, 0) = %d", got)
	}
}

func TestParseRoundingMode(t *testing.T) {
	for _, m := range []RoundingMode{RoundingModeHalfUp, RoundingModeHalfEven, RoundingModeHalfDown, RoundingModeUp, RoundingModeDown} {
		got, err := ParseRoundingMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseRoundingMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseRoundingMode("sideways"); err == nil {
		t.Error("ParseRoundingMode(sideways) should fail")
	}
}
