package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
	"github.com/raveheart1/gapcheck/internal/output"
)

// debounceWindow coalesces the burst of fsnotify events editors emit for a
// single save into one re-evaluation.
const debounceWindow = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <case-file>",
	Short: "Re-evaluate a case manifest whenever it changes",
	Long: `Watch a case manifest and re-run the check on every write. Useful while
tuning parameters toward a passing margin. The verdict of each run is
printed; the process exits on Ctrl+C with the exit code of the last run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseType, opts, err := buildSetup(cmd)
		if err != nil {
			return err
		}
		path := args[0]

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return gaperrors.WrapWithMessage(err, gaperrors.Runtime, "cannot start file watcher")
		}
		defer watcher.Close()

		// Watch the directory, not the file: editors that write via
		// rename-and-replace would otherwise orphan the watch.
		dir := filepath.Dir(path)
		if err := watcher.Add(dir); err != nil {
			return gaperrors.WrapWithMessage(err, gaperrors.Runtime,
				fmt.Sprintf("cannot watch directory %s", dir))
		}

		target, err := filepath.Abs(path)
		if err != nil {
			return gaperrors.WrapWithMessage(err, gaperrors.Runtime, "cannot resolve watch path")
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		runOnce := func() error {
			res, err := evaluateFile(path, caseType, opts)
			if err != nil {
				if cliErr := gaperrors.AsCLIError(err); cliErr != nil {
					fmt.Fprint(os.Stderr, gaperrors.FormatError(cliErr))
					return err
				}
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}
			output.PrintResult(os.Stdout, path, res)
			if !res.Passed {
				return errCheckFailed
			}
			return nil
		}

		lastErr := runOnce()

		var debounce *time.Timer
		pending := make(chan struct{}, 1)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return lastErr
				}
				abs, err := filepath.Abs(ev.Name)
				if err != nil || abs != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceWindow, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			case <-pending:
				output.PrintSeparator(os.Stdout)
				lastErr = runOnce()
			case err, ok := <-watcher.Errors:
				if !ok {
					return lastErr
				}
				fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
			case <-sigCh:
				return lastErr
			}
		}
	},
}

func init() {
	addCheckFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}
