package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
	"github.com/raveheart1/gapcheck/internal/output"
	"github.com/raveheart1/gapcheck/internal/verify"
)

// batchOutcome holds one file's evaluation, kept in input order so the
// report is deterministic regardless of scheduling.
type batchOutcome struct {
	path   string
	result *verify.Result
	err    error
}

var batchCmd = &cobra.Command{
	Use:   "batch <case-file>...",
	Short: "Evaluate many case manifests of the same type in parallel",
	Long: `Evaluate several case manifests concurrently. Cases are independent, so
evaluation is bounded-parallel (--parallel, default 4); the report preserves
input order and one invalid file never aborts the rest.

The exit code reflects the worst outcome across all files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseType, opts, err := buildSetup(cmd)
		if err != nil {
			return err
		}
		parallel, _ := cmd.Flags().GetInt("parallel")
		if parallel < 1 {
			return gaperrors.NewArgumentError(fmt.Sprintf("--parallel must be >= 1, got %d", parallel))
		}

		spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
			spinner.WithWriter(os.Stderr))
		spin.Suffix = fmt.Sprintf(" evaluating %d cases...", len(args))
		spin.Start()

		outcomes := make([]batchOutcome, len(args))
		var g errgroup.Group
		g.SetLimit(parallel)
		for i, path := range args {
			i, path := i, path
			g.Go(func() error {
				res, err := evaluateFile(path, caseType, opts)
				outcomes[i] = batchOutcome{path: path, result: res, err: err}
				return nil
			})
		}
		_ = g.Wait() // per-case errors are captured in outcomes
		spin.Stop()

		worst := ExitSuccess
		for _, o := range outcomes {
			switch {
			case o.err != nil:
				code := ExitRuntime
				if cliErr := gaperrors.AsCLIError(o.err); cliErr != nil {
					fmt.Fprintf(os.Stdout, "FAIL %s\n", o.path)
					fmt.Fprint(os.Stderr, gaperrors.FormatError(cliErr))
					code = exitCodeFor(cliErr.Category)
				} else {
					fmt.Fprintf(os.Stdout, "FAIL %s: %v\n", o.path, o.err)
				}
				if code > worst {
					worst = code
				}
			default:
				output.PrintResult(os.Stdout, o.path, o.result)
				if !o.result.Passed && worst < ExitCheckFailed {
					worst = ExitCheckFailed
				}
			}
		}

		if worst == ExitCheckFailed {
			return errCheckFailed
		}
		if worst != ExitSuccess {
			return &batchError{code: worst}
		}
		return nil
	},
}

// batchError carries an already-reported worst exit code out of the batch
// command without printing anything further.
type batchError struct{ code int }

func (e *batchError) Error() string { return fmt.Sprintf("batch finished with exit code %d", e.code) }

func init() {
	addCheckFlags(batchCmd)
	batchCmd.Flags().Int("parallel", 4, "maximum concurrent evaluations")
	rootCmd.AddCommand(batchCmd)
}
