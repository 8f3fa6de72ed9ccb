package spectral

import (
	"fmt"
	"math"
)

// Estimate is the outcome of a spectral-norm computation. Exact is only
// meaningful when the SVD path ran; AgreeWithinTol only when both paths ran.
type Estimate struct {
	// Value is the power-iteration estimate of ||M||₂. When the iteration
	// hit its cap without converging it is a lower bound, not the norm.
	Value float64
	// Iterations is the number of Gram-matrix applications consumed.
	Iterations int
	// Converged reports whether the stopping rule was met before the cap.
	Converged bool
	// Exact is the SVD-derived largest singular value, when requested.
	Exact float64
	// HasExact marks whether Exact was computed.
	HasExact bool
	// AgreeWithinTol reports |Value - Exact| <= agreement tolerance, when
	// both paths ran.
	AgreeWithinTol bool
}

// PowerIterate estimates the largest eigenvalue of a symmetric
// positive-semidefinite matrix g via power iteration with a Rayleigh
// quotient, returning the eigenvalue estimate, the iteration count, and
// whether the stopping rule was met.
//
// Stopping rule: |λ' − λ| <= tol * max(|λ'|, 1), a relative test that
// degrades to an absolute one near zero. Hitting maxIter without meeting it
// returns converged=false with the last estimate; the caller decides what an
// unconverged lower bound is worth.
func PowerIterate(g *Dense, tol float64, maxIter int) (float64, int, bool, error) {
	if g.rows != g.cols {
		return 0, 0, false, fmt.Errorf("%w: power iteration needs a square matrix, got %dx%d", ErrShape, g.rows, g.cols)
	}
	if maxIter < 1 {
		return 0, 0, false, fmt.Errorf("spectral: iteration cap must be >= 1, got %d", maxIter)
	}
	if g.isZero() {
		return 0, 0, true, nil
	}

	n := g.rows
	x := make([]float64, n)
	y := make([]float64, n)
	// Deterministic start with unequal components so the iterate is not
	// orthogonal to the dominant eigenvector of any fixed small matrix.
	for i := range x {
		x[i] = 1 + float64(i%7)/7
	}
	normalize(x)

	lambda := math.NaN()
	for iter := 1; iter <= maxIter; iter++ {
		g.matVec(x, y)
		next := dot(x, y) // Rayleigh quotient: xᵀGx with ||x||=1
		ynorm := normalize(y)
		if ynorm == 0 {
			// x landed in the null space; the Rayleigh quotient is 0 and
			// cannot improve.
			return 0, iter, true, nil
		}
		x, y = y, x
		if !math.IsNaN(lambda) && math.Abs(next-lambda) <= tol*math.Max(math.Abs(next), 1) {
			return next, iter, true, nil
		}
		lambda = next
	}
	return lambda, maxIter, false, nil
}

// Norm2Power estimates ||m||₂ by power iteration on mᵀm and taking the
// square root of the dominant eigenvalue.
func Norm2Power(m *Dense, tol float64, maxIter int) (float64, int, bool, error) {
	g, err := Gram(m)
	if err != nil {
		return 0, 0, false, err
	}
	lambda, iters, converged, err := PowerIterate(g, tol, maxIter)
	if err != nil {
		return 0, 0, false, err
	}
	if lambda < 0 {
		lambda = 0 // Gram matrices are PSD; negatives are round-off
	}
	return math.Sqrt(lambda), iters, converged, nil
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// normalize scales v to unit Euclidean length in place and returns the
// original norm. A zero vector is left untouched.
func normalize(v []float64) float64 {
	n := math.Sqrt(dot(v, v))
	if n == 0 {
		return 0
	}
	for i := range v {
		v[i] /= n
	}
	return n
}
