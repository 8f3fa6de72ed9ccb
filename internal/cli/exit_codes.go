package cli

// Exit codes for the gapcheck CLI.
// These codes support programmatic composition and CI integration.
const (
	// ExitSuccess indicates every evaluated case passed.
	ExitSuccess = 0

	// ExitCheckFailed indicates at least one case failed its check.
	ExitCheckFailed = 1

	// ExitRuntime indicates an unexpected error during evaluation.
	ExitRuntime = 2

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 3

	// ExitInvalidInput indicates an unreadable, unparseable, or invalid
	// case manifest.
	ExitInvalidInput = 4

	// ExitShapeError indicates a matrix dimension mismatch.
	ExitShapeError = 5
)
