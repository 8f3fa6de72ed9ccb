// Package numguard provides the certified comparison and directed-rounding
// primitives shared by every check evaluator. All rounding decisions in
// gapcheck funnel through this package so that verified mode has a single,
// auditable definition of "round outward".
package numguard

import (
	"fmt"
	"math"
)

// Direction selects which neighbor Next steps to.
type Direction int

const (
	// Down steps toward negative infinity.
	Down Direction = iota
	// Up steps toward positive infinity.
	Up
)

// Next returns the adjacent representable float64 in the given direction.
// Infinities are returned unchanged; NaN propagates.
func Next(x float64, dir Direction) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	if dir == Up {
		return math.Nextafter(x, math.Inf(1))
	}
	return math.Nextafter(x, math.Inf(-1))
}

// StepOut widens [lo, hi] by one representable step on each side.
// It models the representation error of an exact real that was stored
// as a float64 before any arithmetic happened.
func StepOut(lo, hi float64) (float64, float64) {
	return Next(lo, Down), Next(hi, Up)
}

// validateThreshold rejects thresholds and tolerances that would make the
// comparison meaningless. A negative tolerance would flip the comparison's
// sense; NaN compares false against everything and silently fails.
func validateThreshold(eps, tol float64) error {
	if math.IsNaN(eps) {
		return fmt.Errorf("threshold eps is NaN")
	}
	if math.IsNaN(tol) {
		return fmt.Errorf("tolerance tol is NaN")
	}
	if eps < 0 {
		return fmt.Errorf("threshold eps must be nonnegative, got %g", eps)
	}
	if tol < 0 {
		return fmt.Errorf("tolerance tol must be nonnegative, got %g", tol)
	}
	return nil
}

// Compare reports whether lhs <= eps + tol using plain float64 arithmetic.
// This is the non-certified comparison: round-off in lhs may flip the
// verdict either way. Use CompareCertified when a false pass is unacceptable.
func Compare(lhs, eps, tol float64) (bool, error) {
	if err := validateThreshold(eps, tol); err != nil {
		return false, err
	}
	return lhs <= eps+tol, nil
}

// CompareCertified reports whether lhs <= eps + tol after stepping lhs one
// representable value toward +inf. When in doubt the comparison fails:
// a true value that straddles the threshold by less than one ULP is
// reported as exceeding it, never as passing.
func CompareCertified(lhs, eps, tol float64) (bool, error) {
	if err := validateThreshold(eps, tol); err != nil {
		return false, err
	}
	return Next(lhs, Up) <= eps+tol, nil
}
