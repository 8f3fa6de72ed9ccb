package verify

import (
	"errors"
	"fmt"
	"math"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
	"github.com/raveheart1/gapcheck/internal/interval"
	"github.com/raveheart1/gapcheck/internal/manifest"
	"github.com/raveheart1/gapcheck/internal/numguard"
	"github.com/raveheart1/gapcheck/internal/spectral"
)

// evalGammaV checks ||R·Γ||₂ <= eps using the selected spectral method(s).
// When both methods run, the verdict uses the SVD value and the result
// reports both alongside an agreement flag; a disagreement beyond tolerance
// is a warning, never silently resolved by dropping one value.
func (e *Engine) evalGammaV(c *manifest.Case, eps, tol float64) (*Result, error) {
	est, err := spectral.Norm2(c.R, c.Gamma, e.opts.SpectralMethod,
		e.opts.PowerTol, e.opts.PowerMaxIter, e.opts.AgreeTol)
	if err != nil {
		return nil, gaperrors.WrapWithMessage(err, spectralErrorCategory(err), "spectral bound")
	}

	res := &Result{
		Type:     manifest.TypeGammaV,
		Mode:     e.opts.Mode,
		Eps:      eps,
		Tol:      tol,
		Spectral: &est,
	}

	// Verdict value: exact when available, power estimate otherwise.
	lhs := est.Value
	if est.HasExact {
		lhs = est.Exact
	}

	if e.opts.Mode.Certified() {
		lhs = numguard.Next(lhs, numguard.Up)
	}
	res.LHS = lhs
	if e.opts.Mode == ModeInterval {
		// The eigensolver's error dominates representation error, so the
		// enclosure is widened by the convergence tolerance of the path that
		// produced the value rather than one step each way.
		relTol := e.opts.PowerTol
		if est.HasExact {
			relTol = spectral.ExactRelTol
		}
		slack := relTol * math.Max(math.Abs(lhs), 1)
		lo, hi := numguard.StepOut(lhs-slack, lhs+slack)
		if lo < 0 {
			lo = 0
		}
		res.LHSInterval = &interval.Interval{Lo: lo, Hi: hi}
	}

	passed, err := numguard.Compare(lhs, eps, tol)
	if err != nil {
		return nil, err
	}
	res.Passed = passed
	res.Margin = eps - lhs

	usedPowerOnly := e.opts.SpectralMethod == spectral.MethodPower
	if usedPowerOnly && !est.Converged {
		res.warn(WarnConvergence, fmt.Sprintf(
			"power iteration hit the %d-iteration cap without converging; the estimate %.6g is a lower bound",
			e.opts.PowerMaxIter, est.Value))
		// An unconverged estimate is a lower bound only; certified modes
		// refuse to declare a pass from it.
		if e.opts.Mode.Certified() {
			res.Passed = false
		}
	}
	if e.opts.SpectralMethod == spectral.MethodBoth {
		if !est.Converged {
			res.warn(WarnConvergence, fmt.Sprintf(
				"power iteration hit the %d-iteration cap without converging (estimate %.6g); verdict uses the exact value %.6g",
				e.opts.PowerMaxIter, est.Value, est.Exact))
		}
		if !est.AgreeWithinTol {
			res.warn(WarnDisagreement, fmt.Sprintf(
				"power estimate %.9g and exact value %.9g differ by more than %g",
				est.Value, est.Exact, e.opts.AgreeTol))
		}
	}
	return res, nil
}

// spectralErrorCategory maps a spectral failure onto the error taxonomy:
// dimension problems are shape errors, everything else (non-convergence, bad
// iteration caps) is a runtime failure of the solver itself.
func spectralErrorCategory(err error) gaperrors.ErrorCategory {
	if errors.Is(err, spectral.ErrShape) ||
		errors.Is(err, spectral.ErrRagged) ||
		errors.Is(err, spectral.ErrInvalidDimensions) {
		return gaperrors.Shape
	}
	return gaperrors.Runtime
}
