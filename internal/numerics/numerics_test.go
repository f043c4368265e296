package numerics

import (
	"math"
	"testing"
)

func TestDecimalExponent(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		exp   int
		ok    bool
	}{
		{"hundreds", 144, 2, true},
		{"rounded hundreds", 140, 2, true},
		{"thousands", 1440, 3, true},
		{"exact power of ten", 1000, 3, true},
		{"just below power of ten", 999.999, 2, true},
		{"unit", 3, 0, true},
		{"small decimal", 0.0021, -3, true},
		{"planck-scale", 6.62607015e-34, -34, true},
		{"negative value", -144, 2, true},
		{"zero", 0, 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, ok := DecimalExponent(tt.value)
			if ok != tt.ok {
				t.Fatalf("DecimalExponent(%v) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && exp != tt.exp {
				t.Errorf("DecimalExponent(%v) = %d, want %d", tt.value, exp, tt.exp)
			}
		})
	}
}

func TestRoundSig(t *testing.T) {
	tests := []struct {
		value  float64
		digits int
		want   float64
	}{
		{144, 2, 140},
		{144, 3, 144},
		{146, 2, 150},
		{137.035999, 4, 137.0},
		{137.035999, 6, 137.036},
		{0.0021456, 2, 0.0021},
		{-144, 2, -140},
		{0, 3, 0},
	}

	for _, tt := range tests {
		got := RoundSig(tt.value, tt.digits)
		if got != tt.want {
			t.Errorf("RoundSig(%v, %d) = %v, want %v", tt.value, tt.digits, got, tt.want)
		}
	}
}

func TestRoundedKey(t *testing.T) {
	// 140 and 144 agree at two significant digits but not at three
	if RoundedKey(140, 2) != RoundedKey(144, 2) {
		t.Errorf("expected 140 and 144 to share a 2-digit key")
	}
	if RoundedKey(140, 3) == RoundedKey(144, 3) {
		t.Errorf("expected 140 and 144 to differ at 3 digits")
	}
	// Sign is part of the key
	if RoundedKey(144, 2) == RoundedKey(-144, 2) {
		t.Errorf("expected sign to separate keys")
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name   string
		a, b   float64
		relTol float64
		absTol float64
		want   bool
	}{
		{"identical", 144, 144, 1e-6, 1e-12, true},
		{"within relative", 137.035999, 137.0359991, 1e-6, 1e-12, true},
		{"outside relative", 144, 145, 1e-6, 1e-12, false},
		{"near zero absolute", 1e-13, 0, 1e-6, 1e-12, true},
		{"near zero outside absolute", 1e-11, 0, 1e-6, 1e-12, false},
		{"nan", math.NaN(), 1, 1e-6, 1e-12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.relTol, tt.absTol); got != tt.want {
				t.Errorf("WithinTolerance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRelativeDiff(t *testing.T) {
	if got := RelativeDiff(140, 144); got > 0.028 || got < 0.027 {
		t.Errorf("RelativeDiff(140, 144) = %v, want ~0.0278", got)
	}
	if got := RelativeDiff(0, 0); got != 0 {
		t.Errorf("RelativeDiff(0, 0) = %v, want 0", got)
	}
	if got := RelativeDiff(1, 0); !math.IsInf(got, 1) {
		t.Errorf("RelativeDiff(1, 0) = %v, want +Inf", got)
	}
}
