package numguard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		x   float64
		dir Direction
	}{
		"up from one":         {x: 1.0, dir: Up},
		"down from one":       {x: 1.0, dir: Down},
		"up from zero":        {x: 0.0, dir: Up},
		"down from zero":      {x: 0.0, dir: Down},
		"up from negative":    {x: -2.5, dir: Up},
		"down from tiny":      {x: math.SmallestNonzeroFloat64, dir: Down},
		"up from large":       {x: 1e300, dir: Up},
		"down from huge step": {x: -1e300, dir: Down},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := Next(tt.x, tt.dir)
			if tt.dir == Up {
				assert.Greater(t, got, tt.x)
			} else {
				assert.Less(t, got, tt.x)
			}
			// One representable step: nothing fits between x and the result.
			if tt.dir == Up {
				assert.Equal(t, got, math.Nextafter(tt.x, math.Inf(1)))
			} else {
				assert.Equal(t, got, math.Nextafter(tt.x, math.Inf(-1)))
			}
		})
	}
}

func TestNext_InfAndNaN(t *testing.T) {
	t.Parallel()

	assert.True(t, math.IsInf(Next(math.Inf(1), Up), 1))
	assert.True(t, math.IsInf(Next(math.Inf(-1), Down), -1))
	assert.True(t, math.IsNaN(Next(math.NaN(), Up)))
}

func TestStepOut(t *testing.T) {
	t.Parallel()

	lo, hi := StepOut(1.0, 1.0)
	assert.Less(t, lo, 1.0)
	assert.Greater(t, hi, 1.0)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		lhs, eps, tol float64
		want          bool
		wantErr       bool
	}{
		"clear pass":            {lhs: 0.7, eps: 1.0, tol: 0, want: true},
		"clear fail":            {lhs: 1.5, eps: 1.0, tol: 0, want: false},
		"equality passes":       {lhs: 1.0, eps: 1.0, tol: 0, want: true},
		"tolerance rescues":     {lhs: 1.0 + 1e-13, eps: 1.0, tol: 1e-12, want: true},
		"beyond tolerance":      {lhs: 1.0 + 1e-11, eps: 1.0, tol: 1e-12, want: false},
		"negative eps rejected": {lhs: 0, eps: -1, tol: 0, wantErr: true},
		"negative tol rejected": {lhs: 0, eps: 1, tol: -1e-9, wantErr: true},
		"nan eps rejected":      {lhs: 0, eps: math.NaN(), tol: 0, wantErr: true},
		"nan tol rejected":      {lhs: 0, eps: 1, tol: math.NaN(), wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Compare(tt.lhs, tt.eps, tt.tol)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareCertified_NeverMorePermissive(t *testing.T) {
	t.Parallel()

	// Exact equality fails certified comparison at tol=0: the outward step
	// pushes the LHS past the threshold, which is the sound direction.
	plain, err := Compare(1.0, 1.0, 0)
	require.NoError(t, err)
	certified, err := CompareCertified(1.0, 1.0, 0)
	require.NoError(t, err)
	assert.True(t, plain)
	assert.False(t, certified)

	// A certified pass implies a plain pass for the same inputs.
	for _, lhs := range []float64{0.1, 0.5, 0.999999, 1.0, 1.0000001, 2.0} {
		c, err := CompareCertified(lhs, 1.0, 1e-12)
		require.NoError(t, err)
		p, err := Compare(lhs, 1.0, 1e-12)
		require.NoError(t, err)
		if c {
			assert.True(t, p, "certified pass must imply plain pass at lhs=%v", lhs)
		}
	}
}
