// Package numerics provides decimal-oriented helpers for comparing float64
// values the way they appear in prose: by significant digits and base-10
// exponent. All routines go through decimal string formatting rather than
// log/pow arithmetic so results are stable at bucket boundaries.
package numerics

import (
	"math"
	"strconv"
	"strings"
)

// IsFinite reports whether v is an ordinary number (not NaN or Inf).
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DecimalExponent returns the base-10 exponent of v's normalized form
// (144 -> 2, 0.0021 -> -3). The second return is false for zero and
// non-finite values, which have no defined exponent.
func DecimalExponent(v float64) (int, bool) {
	if v == 0 || !IsFinite(v) {
		return 0, false
	}
	// FormatFloat 'e' gives an exact decimal rendering: "1.44e+02".
	s := strconv.FormatFloat(v, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	exp, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return 0, false
	}
	return exp, true
}

// RoundSig rounds v to the given number of significant digits.
// Rounding happens in decimal, so RoundSig(144, 2) == 140 exactly as a
// reader would expect, not a binary approximation of it.
func RoundSig(v float64, digits int) float64 {
	if v == 0 || !IsFinite(v) || digits < 1 {
		return v
	}
	s := strconv.FormatFloat(v, 'e', digits-1, 64)
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return v
	}
	return r
}

// RoundedKey renders v rounded to the given significant digits as a
// canonical string. Two values share a key exactly when they agree after
// decimal rounding to that many digits.
func RoundedKey(v float64, digits int) string {
	if digits < 1 {
		digits = 1
	}
	return strconv.FormatFloat(v, 'e', digits-1, 64)
}

// ExactKey renders v in its shortest exact decimal form, suitable for
// grouping numerically identical values.
func ExactKey(v float64) string {
	return strconv.FormatFloat(v, 'e', -1, 64)
}

// WithinTolerance reports whether a and b are equal within the combined
// relative and absolute tolerance window. The absolute floor keeps values
// near zero comparable where relative difference degenerates.
func WithinTolerance(a, b, relTol, absTol float64) bool {
	if !IsFinite(a) || !IsFinite(b) {
		return false
	}
	diff := math.Abs(a - b)
	if diff <= absTol {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= relTol*scale
}

// RelativeDiff returns |a-b| / |b|, the deviation of a from reference b.
// Returns +Inf when b is zero and a is not.
func RelativeDiff(a, b float64) float64 {
	if b == 0 {
		if a == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(a-b) / math.Abs(b)
}
