package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDense(t *testing.T, rows [][]float64) *Dense {
	t.Helper()
	m, err := FromRows(rows)
	require.NoError(t, err)
	return m
}

func TestFromRows(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		rows    [][]float64
		wantErr error
	}{
		"valid 2x3":  {rows: [][]float64{{1, 2, 3}, {4, 5, 6}}},
		"single":     {rows: [][]float64{{7}}},
		"empty":      {rows: nil, wantErr: ErrInvalidDimensions},
		"empty row":  {rows: [][]float64{{}}, wantErr: ErrInvalidDimensions},
		"ragged row": {rows: [][]float64{{1, 2}, {3}}, wantErr: ErrRagged},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, err := FromRows(tt.rows)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rows), m.Rows())
			assert.Equal(t, len(tt.rows[0]), m.Cols())
			assert.Equal(t, tt.rows[1%len(tt.rows)][0], m.At(1%len(tt.rows), 0))
		})
	}
}

func TestMul(t *testing.T) {
	t.Parallel()

	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := mustDense(t, [][]float64{{5, 6}, {7, 8}})
	got, err := Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, 19.0, got.At(0, 0))
	assert.Equal(t, 22.0, got.At(0, 1))
	assert.Equal(t, 43.0, got.At(1, 0))
	assert.Equal(t, 50.0, got.At(1, 1))
}

func TestMul_ShapeMismatch(t *testing.T) {
	t.Parallel()

	a := mustDense(t, [][]float64{{1, 2, 3}})
	b := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	_, err := Mul(a, b)
	require.ErrorIs(t, err, ErrShape)
}

func TestGram_Symmetric(t *testing.T) {
	t.Parallel()

	m := mustDense(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	g, err := Gram(m)
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows())
	require.Equal(t, 2, g.Cols())
	assert.Equal(t, g.At(0, 1), g.At(1, 0))
	assert.Equal(t, 35.0, g.At(0, 0)) // 1+9+25
	assert.Equal(t, 56.0, g.At(1, 1)) // 4+16+36
	assert.Equal(t, 44.0, g.At(0, 1)) // 2+12+30
}

func TestLargestSingularValue_Known(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		rows [][]float64
		want float64
	}{
		// Symmetric PD with eigenvalues 3 and 1; spectral norm 3.
		"sym pd 2x2": {rows: [][]float64{{2, 1}, {1, 2}}, want: 3},
		// Diagonal: norm is the largest |entry|.
		"diagonal": {rows: [][]float64{{5, 0, 0}, {0, 2, 0}, {0, 0, 1}}, want: 5},
		// Rank-one [1,1;1,1] has singular values {2, 0}.
		"rank one": {rows: [][]float64{{1, 1}, {1, 1}}, want: 2},
		// Rectangular: sqrt of the largest eigenvalue of MᵀM = [[1,0],[0,1]]+... computed by hand:
		// M = [[1,0],[0,1],[1,1]] -> MᵀM = [[2,1],[1,2]] -> sigma = sqrt(3).
		"rectangular": {rows: [][]float64{{1, 0}, {0, 1}, {1, 1}}, want: math.Sqrt(3)},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := mustDense(t, tt.rows)
			got, err := LargestSingularValue(m)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNorm2Power_AgreesWithSVD(t *testing.T) {
	t.Parallel()

	m := mustDense(t, [][]float64{{2, 1}, {1, 2}})
	est, iters, converged, err := Norm2Power(m, 1e-10, 500)
	require.NoError(t, err)
	assert.True(t, converged)
	assert.Greater(t, iters, 0)
	assert.InDelta(t, 3.0, est, 1e-6)

	exact, err := LargestSingularValue(m)
	require.NoError(t, err)
	assert.InDelta(t, exact, est, 1e-6)
}

func TestNorm2Power_ZeroMatrix(t *testing.T) {
	t.Parallel()

	m := mustDense(t, [][]float64{{0, 0}, {0, 0}})
	est, _, converged, err := Norm2Power(m, 1e-10, 500)
	require.NoError(t, err)
	assert.True(t, converged)
	assert.Equal(t, 0.0, est)
}

func TestNorm2Power_CapReturnsLowerBound(t *testing.T) {
	t.Parallel()

	m := mustDense(t, [][]float64{{2, 1}, {1, 2}})
	est, iters, converged, err := Norm2Power(m, 1e-10, 1)
	require.NoError(t, err)
	assert.False(t, converged)
	assert.Equal(t, 1, iters)
	// The Rayleigh quotient of any unit vector is a lower bound on the
	// dominant eigenvalue, so the estimate never exceeds the true norm.
	assert.LessOrEqual(t, est, 3.0+1e-12)
	assert.Greater(t, est, 0.0)
}

func TestNorm2_Methods(t *testing.T) {
	t.Parallel()

	r := mustDense(t, [][]float64{{2, 1}, {1, 2}})
	id := mustDense(t, [][]float64{{1, 0}, {0, 1}})

	tests := map[string]struct {
		method Method
	}{
		"power": {method: MethodPower},
		"svd":   {method: MethodSVD},
		"both":  {method: MethodBoth},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			est, err := Norm2(r, id, tt.method, 1e-10, 500, 1e-6)
			require.NoError(t, err)
			assert.InDelta(t, 3.0, est.Value, 1e-6)
			if tt.method != MethodPower {
				assert.True(t, est.HasExact)
				assert.InDelta(t, 3.0, est.Exact, 1e-9)
			}
			if tt.method == MethodBoth {
				assert.True(t, est.AgreeWithinTol)
			}
		})
	}
}

func TestNorm2_ShapeError(t *testing.T) {
	t.Parallel()

	r := mustDense(t, [][]float64{{1, 2, 3}})
	g := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	_, err := Norm2(r, g, MethodSVD, 1e-10, 500, 1e-6)
	require.ErrorIs(t, err, ErrShape)
}

func TestNorm2_Product(t *testing.T) {
	t.Parallel()

	// R·Γ = [[2,0],[0,0.5]] -> spectral norm 2.
	r := mustDense(t, [][]float64{{2, 0}, {0, 1}})
	g := mustDense(t, [][]float64{{1, 0}, {0, 0.5}})
	est, err := Norm2(r, g, MethodBoth, 1e-10, 500, 1e-6)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, est.Exact, 1e-9)
	assert.True(t, est.AgreeWithinTol)
}
