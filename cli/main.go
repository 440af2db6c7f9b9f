// Command jsfront lexes and parses JavaScript source files.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/jsfront/runtime/lexer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	wd, err := os.Getwd()
	if err != nil {
		FormatError(stderr, ioError(err), false)
		return ExitIO
	}
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, workDir: wd}
	return a.execute(ctx, args)
}

// app carries the I/O streams and resolved settings shared by all commands.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	workDir        string // where default config files are looked up

	// Persistent flags
	configPath        string
	debug             bool
	lenientSeparators bool
	noColor           bool

	// Resolved in setup, flags over config file
	cfg    Config
	logger *slog.Logger
}

func (a *app) execute(ctx context.Context, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		FormatError(a.stderr, err, ShouldUseColor(a.noColor, a.stderr))
		return ExitCode(err)
	}
	return ExitOK
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "jsfront",
		Short:             "Tokenize and parse JavaScript source",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a JSON or YAML config file (default: .jsfront.json, .jsfront.yaml or .jsfront.yml in the working directory)")
	flags.BoolVar(&a.debug, "debug", false, "Log lexer and parser traces to stderr")
	flags.BoolVar(&a.lenientSeparators, "lenient-separators", false, "Accept '_' anywhere inside numeric literals")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newTokensCmd(a), newParseCmd(a))
	return rootCmd
}

// setup loads the config file, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path, err := findConfig(a.configPath, a.workDir)
	if err != nil {
		return err
	}
	if path != "" {
		cfg, err := LoadConfig(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		a.cfg.Debug = a.debug
	}
	if flags.Changed("lenient-separators") {
		a.cfg.LenientSeparators = a.lenientSeparators
	}

	level := slog.LevelInfo
	if a.cfg.Debug || os.Getenv(lexer.DebugEnvVar) != "" {
		level = slog.LevelDebug
	}
	a.logger = lexer.NewLoggerTo(a.stderr, level)
	a.logger.Debug("[CLI] configuration",
		"path", path,
		"lenientSeparators", a.cfg.LenientSeparators,
		"format", a.cfg.Format)
	return nil
}

// lexerOptions returns the lexer options implied by the resolved settings.
func (a *app) lexerOptions() []lexer.LexerOpt {
	opts := []lexer.LexerOpt{lexer.WithLogger(a.logger)}
	if a.cfg.LenientSeparators {
		opts = append(opts, lexer.WithLenientSeparators())
	}
	return opts
}
