// Package safemath provides overflow-checked integer arithmetic for
// allocation size computations.
package safemath

import "math"

// Add returns a+b, with ok false when the sum would overflow int.
func Add(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Mul returns a*b, with ok false when the product would overflow int.
// Essential for doubled-request arena sizing.
func Mul(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, false
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, false
	}
	if a > 0 && b < 0 && b < math.MinInt/a {
		return 0, false
	}
	if a < 0 && b > 0 && a < math.MinInt/b {
		return 0, false
	}
	return a * b, true
}
