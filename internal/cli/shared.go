package cli

import (
	"github.com/spf13/cobra"

	"github.com/raveheart1/gapcheck/internal/config"
	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
	"github.com/raveheart1/gapcheck/internal/manifest"
	"github.com/raveheart1/gapcheck/internal/output"
	"github.com/raveheart1/gapcheck/internal/spectral"
	"github.com/raveheart1/gapcheck/internal/verify"
)

// addCheckFlags registers the evaluation flags shared by check, batch, and
// watch.
func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "case type: core_banach, ledger, coupled_stream, gammaV (required)")
	cmd.Flags().Float64("eps", 0, "override the case's threshold")
	cmd.Flags().Float64("tol", 0, "override the comparison tolerance")
	cmd.Flags().Float64("cP", 0, "override the projection norm c_P")
	cmd.Flags().Bool("verified", false, "certified outward-rounded evaluation")
	cmd.Flags().Bool("interval", false, "full interval propagation (implies --verified)")
	cmd.Flags().Bool("use-gammaV", false, "gammaV: estimate the spectral norm by power iteration")
	cmd.Flags().Bool("svd-exact", false, "gammaV: compute the spectral norm by exact SVD")
	_ = cmd.MarkFlagRequired("type")
}

// buildSetup loads configuration and translates the command's flags into
// evaluation options, returning the requested case type alongside.
func buildSetup(cmd *cobra.Command) (manifest.CaseType, verify.Options, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", verify.Options{}, err
	}
	output.ApplyColorMode(cfg.Color)

	typeName, _ := cmd.Flags().GetString("type")
	caseType, err := manifest.ParseCaseType(typeName)
	if err != nil {
		return "", verify.Options{}, gaperrors.NewArgumentError(err.Error(),
			"Pass --type core_banach, ledger, coupled_stream, or gammaV")
	}

	opts := verify.Options{
		Mode:           verify.ModePlain,
		DefaultEps:     cfg.DefaultEps,
		DefaultTol:     cfg.DefaultTol,
		PowerTol:       cfg.PowerTol,
		PowerMaxIter:   cfg.PowerMaxIters,
		AgreeTol:       cfg.SpectralAgreeTol,
		SpectralMethod: spectral.MethodPower,
	}

	verified, _ := cmd.Flags().GetBool("verified")
	intervalMode, _ := cmd.Flags().GetBool("interval")
	switch {
	case intervalMode:
		opts.Mode = verify.ModeInterval
	case verified || cfg.Verified:
		opts.Mode = verify.ModeVerified
	}

	if cmd.Flags().Changed("eps") {
		v, _ := cmd.Flags().GetFloat64("eps")
		opts.EpsOverride = &v
	}
	if cmd.Flags().Changed("tol") {
		v, _ := cmd.Flags().GetFloat64("tol")
		opts.TolOverride = &v
	}
	if cmd.Flags().Changed("cP") {
		v, _ := cmd.Flags().GetFloat64("cP")
		opts.CPOverride = &v
	}

	usePower, _ := cmd.Flags().GetBool("use-gammaV")
	useSVD, _ := cmd.Flags().GetBool("svd-exact")
	switch {
	case usePower && useSVD:
		opts.SpectralMethod = spectral.MethodBoth
	case useSVD:
		opts.SpectralMethod = spectral.MethodSVD
	default:
		opts.SpectralMethod = spectral.MethodPower
	}

	return caseType, opts, nil
}

// evaluateFile loads and evaluates a single manifest. The returned error is
// nil even for a failing verdict; callers read Result.Passed.
func evaluateFile(path string, caseType manifest.CaseType, opts verify.Options) (*verify.Result, error) {
	c, err := manifest.Load(path, caseType)
	if err != nil {
		return nil, err
	}
	return verify.NewEngine(opts).Evaluate(c)
}
