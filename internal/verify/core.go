package verify

import (
	"github.com/raveheart1/gapcheck/internal/interval"
	"github.com/raveheart1/gapcheck/internal/manifest"
	"github.com/raveheart1/gapcheck/internal/numguard"
)

// contractionLHS evaluates gamma * (1 + t * cP) as an enclosure. This is the
// shared kernel of the core and ledger checks; the ledger multiplies the
// decay factor on afterwards.
func contractionLHS(gamma, t, cP float64) interval.Interval {
	one := interval.Exact(1)
	return interval.Mul(
		interval.FromScalar(gamma),
		interval.Add(one, interval.Mul(interval.FromScalar(t), interval.FromScalar(cP))),
	)
}

// evalCore checks the direct contraction bound gamma*(1+t*c_P) <= eps.
// With t=0 the bound degenerates to gamma <= eps.
func (e *Engine) evalCore(c *manifest.Case, eps, tol float64) (*Result, error) {
	cP, err := e.effectiveCP(c, nil)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Type: manifest.TypeCoreBanach,
		Mode: e.opts.Mode,
		Eps:  eps,
		Tol:  tol,
	}

	if e.opts.Mode.Certified() {
		iv := contractionLHS(c.Core.Gamma, c.Core.T, cP)
		res.LHS = iv.Hi
		if e.opts.Mode == ModeInterval {
			enclosure := iv
			res.LHSInterval = &enclosure
		}
	} else {
		res.LHS = c.Core.Gamma * (1 + c.Core.T*cP)
	}

	passed, err := numguard.Compare(res.LHS, eps, tol)
	if err != nil {
		return nil, err
	}
	res.Passed = passed
	res.Margin = eps - res.LHS
	return res, nil
}
