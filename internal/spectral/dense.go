// Package spectral computes the spectral norm ||R·Γ||₂ two ways: a capped
// power iteration on the product's Gram matrix (fast, approximate, with an
// explicit convergence flag) and an exact largest singular value via Jacobi
// sweeps (slow, always converges). Both paths share the same shape
// validation so a gammaV case fails identically regardless of method.
package spectral

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates non-positive matrix dimensions.
var ErrInvalidDimensions = errors.New("spectral: dimensions must be > 0")

// ErrShape indicates incompatible shapes for a matrix operation.
var ErrShape = errors.New("spectral: shape mismatch")

// ErrRagged indicates input rows of unequal length.
var ErrRagged = errors.New("spectral: ragged rows")

// Dense is a row-major matrix of float64 values backed by a flat slice.
type Dense struct {
	rows, cols int
	data       []float64 // length rows*cols, row-major
}

// NewDense allocates a zero rows×cols matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// FromRows builds a Dense from a slice of rows, rejecting empty or ragged
// input. The rows are copied; the caller keeps ownership of its slices.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidDimensions)
	}
	cols := len(rows[0])
	m, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrRagged, i, len(r), cols)
		}
		copy(m.data[i*cols:(i+1)*cols], r)
	}
	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.cols }

// At returns the element at (i, j) without bounds checking; all callers in
// this package iterate within validated dimensions.
func (m *Dense) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Set writes the element at (i, j).
func (m *Dense) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Mul returns the product a·b, validating the inner dimension.
func Mul(a, b *Dense) (*Dense, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("%w: %dx%d · %dx%d", ErrShape, a.rows, a.cols, b.rows, b.cols)
	}
	out, err := NewDense(a.rows, b.cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.rows; i++ {
		for k := 0; k < a.cols; k++ {
			aik := a.data[i*a.cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.cols; j++ {
				out.data[i*b.cols+j] += aik * b.data[k*b.cols+j]
			}
		}
	}
	return out, nil
}

// Gram returns mᵀ·m, the symmetric positive-semidefinite Gram matrix whose
// largest eigenvalue is the squared spectral norm of m.
func Gram(m *Dense) (*Dense, error) {
	out, err := NewDense(m.cols, m.cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.cols; i++ {
		for j := i; j < m.cols; j++ {
			var s float64
			for k := 0; k < m.rows; k++ {
				s += m.data[k*m.cols+i] * m.data[k*m.cols+j]
			}
			out.data[i*m.cols+j] = s
			out.data[j*m.cols+i] = s
		}
	}
	return out, nil
}

// matVec computes y = m·x for a square m; used by the power iteration.
func (m *Dense) matVec(x, y []float64) {
	for i := 0; i < m.rows; i++ {
		var s float64
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, v := range row {
			s += v * x[j]
		}
		y[i] = s
	}
}

// isZero reports whether every element is exactly zero.
func (m *Dense) isZero() bool {
	for _, v := range m.data {
		if v != 0 {
			return false
		}
	}
	return true
}
