// Package output renders verification reports for the terminal. It is kept
// free of evaluation logic so the verify package stays printable-free and
// testable on values alone.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/raveheart1/gapcheck/internal/manifest"
	"github.com/raveheart1/gapcheck/internal/verify"
)

var (
	okLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText   = color.New(color.Faint).SprintFunc()
	warnText  = color.New(color.FgYellow).SprintFunc()
)

// ApplyColorMode maps the config color setting onto the global color state.
// "auto" leaves fatih/color's TTY detection alone.
func ApplyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// GetTerminalWidth returns the terminal width, defaulting to 80 if
// unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSeparator prints a dim full-width rule, used between watch re-runs.
func PrintSeparator(out io.Writer) {
	fmt.Fprintln(out, dimText(strings.Repeat("─", GetTerminalWidth())))
}

// PrintResult writes the one-line verdict for a case, then any ledger
// diagnostics and warnings on follow-up lines.
func PrintResult(out io.Writer, name string, res *verify.Result) {
	verdict := okLabel("OK")
	if !res.Passed {
		verdict = failLabel("FAIL")
	}

	line := fmt.Sprintf("%s %s [%s, %s]", verdict, name, res.Type, res.Mode)
	switch {
	case res.Inverted && res.LHSInterval != nil:
		line += fmt.Sprintf("  eps_eff=%s", res.LHSInterval)
	case res.Inverted:
		line += fmt.Sprintf("  eps_eff=%.6g", res.LHS)
	case res.LHSInterval != nil:
		line += fmt.Sprintf("  lhs=%s  eps=%.6g", res.LHSInterval, res.Eps)
	default:
		line += fmt.Sprintf("  lhs=%.6g  eps=%.6g", res.LHS, res.Eps)
	}
	fmt.Fprintln(out, line)

	if res.Type == manifest.TypeLedger {
		fmt.Fprintf(out, "  worst step %d: lhs=%.6g (%s=%+.3e)\n",
			res.WorstStep, res.WorstLHS, marginWord(res.Margin), res.Margin)
		if res.FirstFailingStep >= 0 {
			fmt.Fprintf(out, "  first failing step %d: gap=%+.3e\n",
				res.FirstFailingStep, -res.FirstFailMargin)
		}
	} else if !res.Inverted {
		fmt.Fprintf(out, "  %s=%+.3e\n", marginWord(res.Margin), res.Margin)
	}

	if est := res.Spectral; est != nil {
		if est.HasExact {
			fmt.Fprintf(out, "  %s\n", dimText(fmt.Sprintf("svd=%.9g", est.Exact)))
		}
		if est.Iterations > 0 {
			fmt.Fprintf(out, "  %s\n", dimText(fmt.Sprintf("power=%.9g (%d iterations, converged=%t)",
				est.Value, est.Iterations, est.Converged)))
		}
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(out, "  %s\n", warnText(fmt.Sprintf("warning [%s]: %s", w.Kind, w.Message)))
	}
}

// marginWord matches the original report wording: a passing case prints its
// slack as "margin", a failing one prints the shortfall as "gap".
func marginWord(margin float64) string {
	if margin >= 0 {
		return "margin"
	}
	return "gap"
}
