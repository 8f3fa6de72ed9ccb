package verify

import (
	"fmt"
	"math"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
	"github.com/raveheart1/gapcheck/internal/interval"
	"github.com/raveheart1/gapcheck/internal/manifest"
)

// Engine dispatches a validated case to its evaluator. An Engine holds only
// immutable Options and is safe for concurrent use across cases.
type Engine struct {
	opts Options
}

// NewEngine builds an Engine around the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Evaluate runs the case's check and returns its immutable Result. Errors
// are reserved for invalid input and shape problems; a failing check is a
// normal Result with Passed=false.
func (e *Engine) Evaluate(c *manifest.Case) (*Result, error) {
	eps, err := e.effectiveEps(c)
	if err != nil {
		return nil, err
	}
	tol := e.effectiveTol(c)
	if tol < 0 || math.IsNaN(tol) {
		return nil, gaperrors.NewInputError(fmt.Sprintf("tolerance must be nonnegative, got %g", tol))
	}

	switch c.Type {
	case manifest.TypeCoreBanach:
		return e.evalCore(c, eps, tol)
	case manifest.TypeLedger:
		return e.evalLedger(c, eps, tol)
	case manifest.TypeCoupledStream:
		return e.evalCoupled(c, tol)
	case manifest.TypeGammaV:
		return e.evalGammaV(c, eps, tol)
	default:
		return nil, gaperrors.NewInputError(fmt.Sprintf("unknown case type %q", c.Type))
	}
}

// effectiveEps resolves the threshold: CLI override, then the manifest's
// explicit eps, then the derived alpha^beta * exp(-sigma*delta_tau_min),
// then the configured default. In certified modes the derived threshold is
// rounded down, keeping the RHS pessimistic.
func (e *Engine) effectiveEps(c *manifest.Case) (float64, error) {
	if e.opts.EpsOverride != nil {
		return *e.opts.EpsOverride, nil
	}
	if c.Eps != nil {
		return *c.Eps, nil
	}
	if c.Alpha != nil && c.Beta != nil && c.Sigma != nil && c.DeltaTauMin != nil {
		return e.derivedEps(*c.Alpha, *c.Beta, *c.Sigma, *c.DeltaTauMin)
	}
	return e.opts.DefaultEps, nil
}

// derivedEps computes alpha^beta * exp(-sigma*deltaTauMin).
func (e *Engine) derivedEps(alpha, beta, sigma, deltaTauMin float64) (float64, error) {
	if alpha < 0 {
		return 0, gaperrors.NewInputError(fmt.Sprintf("field %q must be nonnegative, got %g", "alpha", alpha))
	}
	if !e.opts.Mode.Certified() {
		return math.Pow(alpha, beta) * math.Exp(-sigma*deltaTauMin), nil
	}
	base := interval.FromScalar(alpha)
	if base.Lo < 0 {
		base.Lo = 0 // the outward step may cross zero for tiny alpha
	}
	pow, err := interval.Pow(base, beta)
	if err != nil {
		return 0, gaperrors.WrapWithMessage(err, gaperrors.Input, "cannot derive threshold")
	}
	decay := interval.Exp(interval.Neg(interval.Mul(interval.FromScalar(sigma), interval.FromScalar(deltaTauMin))))
	iv := interval.Mul(pow, decay)
	if iv.Lo < 0 {
		return 0, nil
	}
	return iv.Lo, nil
}

// effectiveTol resolves the comparison tolerance: CLI override, manifest
// tolerance, configured default.
func (e *Engine) effectiveTol(c *manifest.Case) float64 {
	if e.opts.TolOverride != nil {
		return *e.opts.TolOverride
	}
	if c.Tol != nil {
		return *c.Tol
	}
	return e.opts.DefaultTol
}

// effectiveCP resolves the projection norm for a core case or a ledger step:
// CLI override, step-level c_P, manifest-level c_P. Absence everywhere is an
// input error; the check is meaningless without it.
func (e *Engine) effectiveCP(c *manifest.Case, stepCP *float64) (float64, error) {
	if e.opts.CPOverride != nil {
		return *e.opts.CPOverride, nil
	}
	if stepCP != nil {
		return *stepCP, nil
	}
	if c.CP != nil {
		return *c.CP, nil
	}
	return 0, gaperrors.NewInputError(
		"no c_P available: provide --cP, a manifest-level c_P, or per-step c_P values")
}
