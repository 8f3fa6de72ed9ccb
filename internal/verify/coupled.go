package verify

import (
	"math"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
	"github.com/raveheart1/gapcheck/internal/interval"
	"github.com/raveheart1/gapcheck/internal/manifest"
)

// evalCoupled checks the coupled-stream stability condition
// min(kappa1, kappa2) > 2*sqrt(eta1*eta2). The sense is inverted relative to
// the other checks: eps_eff = min(kappa) - 2*sqrt(eta1*eta2) is a margin
// that must be strictly positive (within tolerance, eps_eff > -tol).
// Certified modes therefore round eps_eff DOWN: the sound endpoint for a
// lower-bounded quantity is the lower one.
func (e *Engine) evalCoupled(c *manifest.Case, tol float64) (*Result, error) {
	s := c.Stream

	res := &Result{
		Type:     manifest.TypeCoupledStream,
		Mode:     e.opts.Mode,
		Tol:      tol,
		Inverted: true,
	}

	if e.opts.Mode.Certified() {
		minK := interval.Min(interval.FromScalar(s.Kappa1), interval.FromScalar(s.Kappa2))
		etaProd := interval.Mul(interval.FromScalar(s.Eta1), interval.FromScalar(s.Eta2))
		if etaProd.Lo < 0 {
			etaProd.Lo = 0 // the outward step may cross zero for tiny etas
		}
		root, err := interval.Sqrt(etaProd)
		if err != nil {
			return nil, gaperrors.WrapWithMessage(err, gaperrors.Input, "coupled_stream coupling term")
		}
		epsEff := interval.Sub(minK, interval.Scale(2, root))
		res.LHS = epsEff.Lo
		if e.opts.Mode == ModeInterval {
			enclosure := epsEff
			res.LHSInterval = &enclosure
		}
	} else {
		res.LHS = math.Min(s.Kappa1, s.Kappa2) - 2*math.Sqrt(s.Eta1*s.Eta2)
	}

	// Strict inequality: zero does not pass at tol=0.
	res.Passed = res.LHS > -tol
	res.Margin = res.LHS
	return res, nil
}
