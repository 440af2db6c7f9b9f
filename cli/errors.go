package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Process exit codes
const (
	ExitOK     = 0 // success
	ExitUsage  = 1 // invalid arguments or configuration
	ExitIO     = 2 // input could not be read
	ExitSyntax = 3 // lexical or parse error in the input
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "usage", "config", "io", "syntax"
	Message string
	Details string // Additional context, such as a source snippet
	Hint    string // How to fix it
	Code    int    // Process exit code
	Err     error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

func usageError(message, hint string) *CLIError {
	return &CLIError{Type: "usage", Message: message, Hint: hint, Code: ExitUsage}
}

func configError(path string, err error, details string) *CLIError {
	return &CLIError{
		Type:    "config",
		Message: fmt.Sprintf("invalid configuration %s: %v", path, err),
		Details: details,
		Hint:    "Allowed keys: lenientSeparators (bool), format (text|json|cbor), debug (bool)",
		Code:    ExitUsage,
		Err:     err,
	}
}

func ioError(err error) *CLIError {
	return &CLIError{Type: "io", Message: err.Error(), Code: ExitIO, Err: err}
}

// syntaxError wraps a lexer or parser failure in source.
func syntaxError(source string, err error) *CLIError {
	return &CLIError{
		Type:    "syntax",
		Message: "failed to process " + source,
		Details: err.Error(),
		Code:    ExitSyntax,
		Err:     err,
	}
}

// ExitCode maps an error returned by the root command to a process exit code.
// Errors that did not come from this package, such as cobra's argument
// validation, count as usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitUsage
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
		return
	}

	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), cliErr.Message)
	if cliErr.Details != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", cliErr.Details)
	}
	if cliErr.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), cliErr.Hint)
	}
}
