// Package cli wires the gapcheck commands: check evaluates one case file,
// batch evaluates many in parallel, watch re-evaluates a file on change.
// Commands print their reports themselves; Execute maps errors and verdicts
// onto the exit codes in exit_codes.go.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
)

// errCheckFailed signals a completed evaluation whose verdict was FAIL.
// It is sentinel control flow between RunE and Execute, never printed.
var errCheckFailed = errors.New("check failed")

var rootCmd = &cobra.Command{
	Use:   "gapcheck",
	Short: "Verify contraction smallness conditions from case manifests",
	Long: `gapcheck verifies smallness/contraction conditions used in fixed-point
convergence arguments. It evaluates a check-specific left-hand side from a
JSON or YAML case manifest and compares it against a threshold:

  core_banach     gamma*(1+t*c_P) <= eps
  ledger          gamma_k*(1+t_k*c_P)*exp(-sigma*dtau_k) <= eps for all k
  coupled_stream  min(kappa1,kappa2) - 2*sqrt(eta1*eta2) > 0
  gammaV          ||R*Gamma||_2 <= eps  (power iteration and/or exact SVD)

With --verified the left-hand side is evaluated with outward rounding so
floating-point error can never manufacture a false pass; --interval
additionally reports the full certified enclosure.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to a project config file (default .gapcheck/config.yml)")
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, errCheckFailed) {
		return ExitCheckFailed
	}
	var be *batchError
	if errors.As(err, &be) {
		// Batch already reported its cases; just surface the worst code.
		return be.code
	}
	if cliErr := gaperrors.AsCLIError(err); cliErr != nil {
		fmt.Fprint(os.Stderr, gaperrors.FormatError(cliErr))
		return exitCodeFor(cliErr.Category)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitCodeForPlain(err)
}

// exitCodeFor maps an error category onto its exit code.
func exitCodeFor(c gaperrors.ErrorCategory) int {
	switch c {
	case gaperrors.Argument:
		return ExitInvalidArguments
	case gaperrors.Manifest, gaperrors.Input:
		return ExitInvalidInput
	case gaperrors.Shape:
		return ExitShapeError
	default:
		return ExitRuntime
	}
}

// exitCodeForPlain handles errors that bypassed the CLIError taxonomy,
// which in practice means cobra's own flag and argument parsing failures.
func exitCodeForPlain(error) int {
	return ExitInvalidArguments
}
