package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/gapcheck/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check <case-file>",
	Short: "Evaluate one case manifest and report OK or FAIL",
	Long: `Evaluate a single JSON or YAML case manifest against its threshold.

Examples:
  # Direct contraction bound with the manifest's own threshold
  gapcheck check case.json --type core_banach

  # Certified evaluation with an explicit threshold
  gapcheck check case.json --type ledger --eps 0.9 --verified

  # Spectral bound, both methods, full interval report
  gapcheck check case.json --type gammaV --use-gammaV --svd-exact --interval

Exit codes: 0 pass, 1 failing check, 2 runtime error, 3 invalid arguments,
4 invalid manifest or input, 5 matrix shape error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseType, opts, err := buildSetup(cmd)
		if err != nil {
			return err
		}
		res, err := evaluateFile(args[0], caseType, opts)
		if err != nil {
			return err
		}
		output.PrintResult(os.Stdout, args[0], res)
		if !res.Passed {
			return errCheckFailed
		}
		return nil
	},
}

func init() {
	addCheckFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
