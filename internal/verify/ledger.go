package verify

import (
	"math"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
	"github.com/raveheart1/gapcheck/internal/interval"
	"github.com/raveheart1/gapcheck/internal/manifest"
	"github.com/raveheart1/gapcheck/internal/numguard"
)

// evalLedger checks gamma_k*(1+t_k*c_P_k)*exp(-sigma*delta_tau_k) <= eps for
// every step k. The overall verdict is the conjunction; the result records
// the first failing step in ascending index order and the worst (largest)
// LHS across all steps.
func (e *Engine) evalLedger(c *manifest.Case, eps, tol float64) (*Result, error) {
	// Manifest loading already rejects this, but hand-built cases reach the
	// engine directly; an empty conjunction must not pass vacuously.
	if len(c.Steps) == 0 {
		return nil, gaperrors.NewInputError("ledger case requires a non-empty steps array")
	}

	sigma := 0.0
	if c.Sigma != nil {
		sigma = *c.Sigma
	}

	res := &Result{
		Type:             manifest.TypeLedger,
		Mode:             e.opts.Mode,
		Eps:              eps,
		Tol:              tol,
		Passed:           true,
		StepCount:        len(c.Steps),
		FirstFailingStep: -1,
		WorstLHS:         math.Inf(-1),
	}

	var worstEnclosure interval.Interval
	for k, step := range c.Steps {
		cP, err := e.effectiveCP(c, step.CP)
		if err != nil {
			return nil, err
		}

		var lhs float64
		var enclosure interval.Interval
		if e.opts.Mode.Certified() {
			decay := interval.Exp(interval.Neg(
				interval.Mul(interval.FromScalar(sigma), interval.FromScalar(step.DeltaTau))))
			enclosure = interval.Mul(contractionLHS(step.Gamma, step.T, cP), decay)
			lhs = enclosure.Hi
		} else {
			lhs = step.Gamma * (1 + step.T*cP) * math.Exp(-sigma*step.DeltaTau)
		}

		ok, err := numguard.Compare(lhs, eps, tol)
		if err != nil {
			return nil, err
		}
		if !ok && res.FirstFailingStep < 0 {
			res.FirstFailingStep = k
			res.FirstFailMargin = eps - lhs
		}
		if !ok {
			res.Passed = false
		}
		if lhs > res.WorstLHS {
			res.WorstLHS = lhs
			res.WorstStep = k
			worstEnclosure = enclosure
		}
	}

	res.LHS = res.WorstLHS
	res.Margin = eps - res.WorstLHS
	if e.opts.Mode == ModeInterval {
		enclosure := worstEnclosure
		res.LHSInterval = &enclosure
	}
	return res, nil
}
