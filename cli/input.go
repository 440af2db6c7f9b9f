package main

import (
	"fmt"
	"io"
	"os"
)

// source is one loaded input.
type source struct {
	name string // file path, or "<stdin>"
	text string
}

// readSource handles the 3 modes of input:
// 1. Explicit stdin with "-"
// 2. No argument with piped stdin
// 3. File path
func readSource(args []string, stdin io.Reader) (source, error) {
	if len(args) == 0 || args[0] == "-" {
		if len(args) == 0 && isTerminal(stdin) {
			return source{}, usageError("no input", "Pass a file path, '-' for stdin, or pipe source into the command")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return source{}, ioError(fmt.Errorf("reading stdin: %w", err))
		}
		return source{name: "<stdin>", text: string(data)}, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return source{}, ioError(fmt.Errorf("error opening file %s: %w", args[0], err))
	}
	return source{name: args[0], text: string(data)}, nil
}

// isTerminal reports whether r is an interactive terminal rather than a pipe
// or file.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
