package config

import (
	"fmt"
	"math"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
)

// Validate rejects configuration values that would make comparisons
// meaningless or the power iteration non-terminating.
func (c *Configuration) Validate() error {
	if math.IsNaN(c.DefaultEps) || c.DefaultEps < 0 {
		return gaperrors.NewInputError(fmt.Sprintf("default_eps must be nonnegative, got %g", c.DefaultEps))
	}
	if math.IsNaN(c.DefaultTol) || c.DefaultTol < 0 {
		return gaperrors.NewInputError(fmt.Sprintf("default_tol must be nonnegative, got %g", c.DefaultTol))
	}
	if math.IsNaN(c.PowerTol) || c.PowerTol <= 0 {
		return gaperrors.NewInputError(fmt.Sprintf("power_tol must be positive, got %g", c.PowerTol))
	}
	if c.PowerMaxIters < 1 {
		return gaperrors.NewInputError(fmt.Sprintf("power_max_iters must be >= 1, got %d", c.PowerMaxIters))
	}
	if math.IsNaN(c.SpectralAgreeTol) || c.SpectralAgreeTol <= 0 {
		return gaperrors.NewInputError(fmt.Sprintf("spectral_agree_tol must be positive, got %g", c.SpectralAgreeTol))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return gaperrors.NewInputError(fmt.Sprintf("color must be auto, always, or never, got %q", c.Color))
	}
	return nil
}
