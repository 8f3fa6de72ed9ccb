// Package verify evaluates validated verification cases. Each check is a
// pure function of its case and the evaluation options: no state is carried
// between cases, and evaluating the same case twice yields identical results.
package verify

import "github.com/raveheart1/gapcheck/internal/spectral"

// Mode selects how much rounding certification the evaluation carries.
type Mode int

const (
	// ModePlain evaluates with ordinary float64 arithmetic. Round-off may
	// flip a verdict either way; results are not certified.
	ModePlain Mode = iota
	// ModeVerified propagates each formula through the interval kernel and
	// compares on the conservative endpoint, so round-off can only turn a
	// pass into a failure, never the reverse.
	ModeVerified
	// ModeInterval is ModeVerified plus the full enclosure attached to the
	// result for reporting.
	ModeInterval
)

// String returns the mode name used in reports.
func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeVerified:
		return "verified"
	case ModeInterval:
		return "interval"
	default:
		return "unknown"
	}
}

// Certified reports whether the mode uses outward-rounded arithmetic.
func (m Mode) Certified() bool {
	return m == ModeVerified || m == ModeInterval
}

// Options carries everything an evaluation needs beyond the case itself.
// Overrides are pointers so absence falls through to the case's own values
// and then to the defaults. Options values are treated as immutable.
type Options struct {
	// Mode selects plain, verified, or interval evaluation.
	Mode Mode

	// EpsOverride replaces the case's threshold when non-nil.
	EpsOverride *float64
	// TolOverride replaces the case's comparison tolerance when non-nil.
	TolOverride *float64
	// CPOverride replaces the manifest's c_P (and every step's) when non-nil.
	CPOverride *float64

	// DefaultEps applies when neither an override, an explicit manifest
	// threshold, nor the derived-threshold inputs are present.
	DefaultEps float64
	// DefaultTol applies when neither an override nor a manifest tolerance
	// is present.
	DefaultTol float64

	// SpectralMethod selects the ||R·Γ||₂ path(s) for gammaV cases.
	SpectralMethod spectral.Method
	// PowerTol is the power iteration's relative convergence tolerance.
	PowerTol float64
	// PowerMaxIter caps the power iteration.
	PowerMaxIter int
	// AgreeTol bounds the allowed |power - svd| gap before a disagreement
	// warning is raised.
	AgreeTol float64
}
