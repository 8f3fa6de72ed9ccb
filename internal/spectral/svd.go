package spectral

import (
	"fmt"
	"math"
)

// Jacobi sweep defaults. The off-diagonal tolerance is relative to the
// largest diagonal magnitude, so conditioning of the inputs does not change
// how many sweeps a given accuracy costs.
const (
	jacobiTol     = 1e-14
	jacobiMaxIter = 10000
)

// ExactRelTol is the relative accuracy of the exact path: eigenvalues are
// resolved until the largest off-diagonal entry drops below this fraction of
// the diagonal scale. Callers building enclosures around the exact value
// should allow at least this much slack.
const ExactRelTol = jacobiTol

// LargestSingularValue computes ||m||₂ exactly (to working precision) as the
// square root of the largest eigenvalue of mᵀm, diagonalized by classical
// Jacobi rotations. Cost is cubic in the smaller dimension per sweep, which
// is fine for the small certification matrices gapcheck sees.
func LargestSingularValue(m *Dense) (float64, error) {
	g, err := Gram(m)
	if err != nil {
		return 0, err
	}
	eig, err := jacobiLargestEigenvalue(g)
	if err != nil {
		return 0, err
	}
	if eig < 0 {
		eig = 0 // PSD by construction; negatives are round-off
	}
	return math.Sqrt(eig), nil
}

// jacobiLargestEigenvalue diagonalizes a symmetric matrix in place by
// repeatedly rotating away the largest off-diagonal element, then returns
// the largest diagonal entry. g is clobbered.
func jacobiLargestEigenvalue(g *Dense) (float64, error) {
	n := g.rows
	if n != g.cols {
		return 0, fmt.Errorf("%w: eigensolve needs a square matrix, got %dx%d", ErrShape, n, g.cols)
	}
	if n == 1 {
		return g.data[0], nil
	}

	scale := maxAbsDiagonal(g)
	if scale == 0 {
		scale = 1
	}

	for iter := 0; iter < jacobiMaxIter; iter++ {
		// Pivot on the largest off-diagonal magnitude.
		p, q, off := 0, 1, 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if a := math.Abs(g.At(i, j)); a > off {
					off, p, q = a, i, j
				}
			}
		}
		if off <= jacobiTol*scale {
			return maxDiagonal(g), nil
		}

		app := g.At(p, p)
		aqq := g.At(q, q)
		apq := g.At(p, q)

		// Rotation angle from the standard stable formulation.
		theta := (aqq - app) / (2 * apq)
		t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
		c := 1 / math.Sqrt(t*t+1)
		s := t * c

		for i := 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip := g.At(i, p)
			aiq := g.At(i, q)
			g.Set(i, p, c*aip-s*aiq)
			g.Set(p, i, c*aip-s*aiq)
			g.Set(i, q, s*aip+c*aiq)
			g.Set(q, i, s*aip+c*aiq)
		}
		g.Set(p, p, app-t*apq)
		g.Set(q, q, aqq+t*apq)
		g.Set(p, q, 0)
		g.Set(q, p, 0)
	}
	return 0, fmt.Errorf("spectral: jacobi sweeps did not converge in %d rotations", jacobiMaxIter)
}

func maxDiagonal(g *Dense) float64 {
	m := g.At(0, 0)
	for i := 1; i < g.rows; i++ {
		if v := g.At(i, i); v > m {
			m = v
		}
	}
	return m
}

func maxAbsDiagonal(g *Dense) float64 {
	var m float64
	for i := 0; i < g.rows; i++ {
		if v := math.Abs(g.At(i, i)); v > m {
			m = v
		}
	}
	return m
}
