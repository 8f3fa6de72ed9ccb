package verify

import (
	"github.com/raveheart1/gapcheck/internal/interval"
	"github.com/raveheart1/gapcheck/internal/manifest"
	"github.com/raveheart1/gapcheck/internal/spectral"
)

// WarningKind classifies non-fatal diagnostics attached to a Result.
type WarningKind int

const (
	// WarnConvergence marks a power iteration that hit its cap; the
	// estimate is a lower bound only.
	WarnConvergence WarningKind = iota
	// WarnDisagreement marks power and SVD values differing beyond the
	// agreement tolerance when both were requested.
	WarnDisagreement
)

// String returns the warning label used in reports.
func (k WarningKind) String() string {
	switch k {
	case WarnConvergence:
		return "convergence"
	case WarnDisagreement:
		return "disagreement"
	default:
		return "warning"
	}
}

// Warning is a non-fatal diagnostic. Warnings never change a verdict by
// themselves; they explain one.
type Warning struct {
	Kind    WarningKind
	Message string
}

// Result is the immutable outcome of evaluating one case. It is constructed
// once per evaluation and never mutated afterwards.
type Result struct {
	// Type is the case variant that produced this result.
	Type manifest.CaseType
	// Mode records which arithmetic certified the verdict.
	Mode Mode
	// Passed is the verdict.
	Passed bool

	// LHS is the compared quantity: the certified upper bound of the
	// formula in verified modes, the plain value otherwise. For
	// coupled_stream it is eps_eff (and Inverted is set).
	LHS float64
	// LHSInterval is the full enclosure, attached in ModeInterval only.
	LHSInterval *interval.Interval
	// Eps is the effective threshold the comparison used.
	Eps float64
	// Tol is the effective comparison tolerance.
	Tol float64
	// Margin is Eps - LHS; negative means failure. For coupled_stream the
	// margin is eps_eff itself (larger is better, zero does not pass).
	Margin float64
	// Inverted marks the coupled_stream sense: LHS is a stability margin
	// that must exceed zero rather than stay under a ceiling.
	Inverted bool

	// Ledger diagnostics. FirstFailingStep is -1 when every step passed;
	// indices are ascending regardless of evaluation order.
	StepCount        int
	FirstFailingStep int
	FirstFailMargin  float64
	WorstStep        int
	WorstLHS         float64

	// Spectral carries the gammaV estimate(s) when that path ran.
	Spectral *spectral.Estimate

	// Warnings holds non-fatal diagnostics (convergence, disagreement).
	Warnings []Warning
}

// warn appends a warning during construction. Results are immutable once
// returned; only the evaluators call this.
func (r *Result) warn(kind WarningKind, message string) {
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Message: message})
}
