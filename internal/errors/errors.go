// Package errors provides structured error handling for the gapcheck CLI.
// Errors carry a category, which maps to a distinct exit code, and optional
// remediation guidance printed under the message.
package errors

import "fmt"

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Argument errors are caused by invalid or missing command arguments.
	Argument ErrorCategory = iota
	// Manifest errors are caused by unreadable or unparseable case files.
	Manifest
	// Input errors are caused by case values that fail validation
	// (NaN, negative where nonnegative is required, empty ledger).
	Input
	// Shape errors are caused by incompatible matrix dimensions.
	Shape
	// Runtime errors occur during evaluation itself.
	Runtime
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Manifest:
		return "Manifest Error"
	case Input:
		return "Invalid Input"
	case Shape:
		return "Shape Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Argument, Manifest, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewArgumentError creates a new argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewManifestError creates a new manifest error.
func NewManifestError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Manifest, Message: message, Remediation: remediation}
}

// NewInputError creates a new invalid-input error.
func NewInputError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Input, Message: message, Remediation: remediation}
}

// NewShapeError creates a new shape error.
func NewShapeError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Shape, Message: message, Remediation: remediation}
}

// WrapWithMessage wraps an error with a custom message and category,
// preserving the cause for errors.Is/As.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Cause:       err,
	}
}

// AsCLIError attempts to convert an error to a CLIError.
// Returns nil if the error is not a CLIError.
func AsCLIError(err error) *CLIError {
	cliErr, ok := err.(*CLIError)
	if ok {
		return cliErr
	}
	return nil
}
