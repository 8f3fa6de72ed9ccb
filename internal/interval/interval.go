// Package interval implements closed-interval arithmetic with outward
// rounding. Every operation widens its result by one representable step on
// each side, so the returned interval always encloses the exact real result
// of the operation applied to any reals inside the operand intervals.
//
// gapcheck uses this kernel for verified and interval evaluation modes:
// a check's LHS is propagated as an Interval and compared against the
// threshold using the conservative endpoint.
package interval

import (
	"errors"
	"fmt"
	"math"

	"github.com/raveheart1/gapcheck/internal/numguard"
)

// ErrInvalidInterval indicates endpoints with lo > hi or a NaN endpoint.
var ErrInvalidInterval = errors.New("interval: lo > hi or NaN endpoint")

// ErrNegativeSqrt indicates a square root of an interval extending below zero.
var ErrNegativeSqrt = errors.New("interval: sqrt of negative lower bound")

// Interval is a closed enclosure [Lo, Hi] of a real value, Lo <= Hi.
type Interval struct {
	Lo, Hi float64
}

// New builds an interval from explicit endpoints.
func New(lo, hi float64) (Interval, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return Interval{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidInterval, lo, hi)
	}
	return Interval{Lo: lo, Hi: hi}, nil
}

// FromScalar converts a float64 into a degenerate interval inflated one
// representable step in each direction. The inflation accounts for the
// representation error of the decimal the scalar was parsed from.
func FromScalar(x float64) Interval {
	lo, hi := numguard.StepOut(x, x)
	return Interval{Lo: lo, Hi: hi}
}

// Exact wraps a float64 as a zero-width interval with no inflation.
// Use only for values that are exact by construction (integer constants,
// results already outward-rounded).
func Exact(x float64) Interval {
	return Interval{Lo: x, Hi: x}
}

// Contains reports whether x lies inside the interval.
func (iv Interval) Contains(x float64) bool {
	return iv.Lo <= x && x <= iv.Hi
}

// Width returns Hi - Lo.
func (iv Interval) Width() float64 {
	return iv.Hi - iv.Lo
}

// String renders the interval as "[lo, hi]".
func (iv Interval) String() string {
	return fmt.Sprintf("[%.17g, %.17g]", iv.Lo, iv.Hi)
}

// outward widens both endpoints by one step after a float64 operation whose
// rounding direction is unknown. Go computes in round-to-nearest, so the
// true result lies within one ULP of the computed endpoint on either side.
func outward(lo, hi float64) Interval {
	lo, hi = numguard.StepOut(lo, hi)
	return Interval{Lo: lo, Hi: hi}
}

// Add returns an enclosure of a + b.
func Add(a, b Interval) Interval {
	return outward(a.Lo+b.Lo, a.Hi+b.Hi)
}

// Mul returns an enclosure of a * b. All four endpoint products are
// candidates since the operands may span zero.
func Mul(a, b Interval) Interval {
	p1 := a.Lo * b.Lo
	p2 := a.Lo * b.Hi
	p3 := a.Hi * b.Lo
	p4 := a.Hi * b.Hi
	lo := math.Min(math.Min(p1, p2), math.Min(p3, p4))
	hi := math.Max(math.Max(p1, p2), math.Max(p3, p4))
	return outward(lo, hi)
}

// Scale returns an enclosure of c * a for an exact scalar c.
func Scale(c float64, a Interval) Interval {
	return Mul(Exact(c), a)
}

// Neg returns the exact negation; negation is exact in IEEE 754 so no
// outward step is taken.
func Neg(a Interval) Interval {
	return Interval{Lo: -a.Hi, Hi: -a.Lo}
}

// Sub returns an enclosure of a - b.
func Sub(a, b Interval) Interval {
	return Add(a, Neg(b))
}

// Exp returns an enclosure of exp(a). exp is increasing, so the image of a
// closed interval is the image of its endpoints.
func Exp(a Interval) Interval {
	return outward(math.Exp(a.Lo), math.Exp(a.Hi))
}

// Sqrt returns an enclosure of sqrt(a). The lower endpoint must be
// nonnegative; an interval dipping below zero is a validation failure in
// the caller's domain, not a quantity to clamp.
func Sqrt(a Interval) (Interval, error) {
	if a.Lo < 0 {
		return Interval{}, fmt.Errorf("%w: %s", ErrNegativeSqrt, a)
	}
	iv := outward(math.Sqrt(a.Lo), math.Sqrt(a.Hi))
	if iv.Lo < 0 {
		iv.Lo = 0
	}
	return iv, nil
}

// Min returns an enclosure of min(a, b): each endpoint is the minimum of
// the corresponding endpoints. min is exact on floats, so no outward step.
func Min(a, b Interval) Interval {
	return Interval{Lo: math.Min(a.Lo, b.Lo), Hi: math.Min(a.Hi, b.Hi)}
}

// Pow returns an enclosure of a^p for a nonnegative base interval and an
// exact exponent p. x^p is monotone in x for fixed p when x >= 0
// (increasing for p > 0, decreasing for p < 0, constant 1 for p == 0).
func Pow(a Interval, p float64) (Interval, error) {
	if a.Lo < 0 {
		return Interval{}, fmt.Errorf("interval: pow of negative lower bound %s", a)
	}
	lo := math.Pow(a.Lo, p)
	hi := math.Pow(a.Hi, p)
	if p < 0 {
		lo, hi = hi, lo
	}
	return outward(lo, hi), nil
}
