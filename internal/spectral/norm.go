package spectral

import "math"

// Method selects which spectral-norm path(s) to run for a gammaV check.
type Method int

const (
	// MethodPower runs only the capped power iteration.
	MethodPower Method = iota
	// MethodSVD runs only the exact Jacobi path.
	MethodSVD
	// MethodBoth runs both and records whether they agree.
	MethodBoth
)

// String returns the method name used in reports.
func (m Method) String() string {
	switch m {
	case MethodPower:
		return "power"
	case MethodSVD:
		return "svd"
	case MethodBoth:
		return "power+svd"
	default:
		return "unknown"
	}
}

// Norm2 computes ||r·gamma||₂ by the selected method(s). With MethodBoth,
// both values land in the Estimate and AgreeWithinTol records whether they
// differ by at most agreeTol; the caller surfaces a disagreement as a
// warning, never by discarding one of the values.
func Norm2(r, gamma *Dense, method Method, powerTol float64, powerMaxIter int, agreeTol float64) (Estimate, error) {
	prod, err := Mul(r, gamma)
	if err != nil {
		return Estimate{}, err
	}

	var est Estimate
	if method == MethodPower || method == MethodBoth {
		v, iters, converged, err := Norm2Power(prod, powerTol, powerMaxIter)
		if err != nil {
			return Estimate{}, err
		}
		est.Value = v
		est.Iterations = iters
		est.Converged = converged
	}
	if method == MethodSVD || method == MethodBoth {
		exact, err := LargestSingularValue(prod)
		if err != nil {
			return Estimate{}, err
		}
		est.Exact = exact
		est.HasExact = true
		if method == MethodSVD {
			// The exact path always converges; mirror it into the primary
			// fields so single-method callers read one place.
			est.Value = exact
			est.Converged = true
		}
	}
	if method == MethodBoth {
		est.AgreeWithinTol = math.Abs(est.Value-est.Exact) <= agreeTol
	}
	return est, nil
}
