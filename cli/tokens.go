package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aledsdavies/jsfront/core/tokenfmt"
	"github.com/aledsdavies/jsfront/runtime/lexer"
	"github.com/aledsdavies/jsfront/runtime/parser"
)

// outputFormat is the --format flag value
type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatCBOR outputFormat = "cbor"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(v string) error {
	switch outputFormat(v) {
	case formatText, formatJSON, formatCBOR:
		*f = outputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of text, json, cbor")
	}
}

func (f *outputFormat) Type() string { return "format" }

type tokensOptions struct {
	format    outputFormat
	first     bool
	telemetry bool
	watch     bool
}

func newTokensCmd(a *app) *cobra.Command {
	opts := &tokensOptions{format: formatText}

	cmd := &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Print the tokens of a source file",
		Long: `Print the tokens of a source file, or of stdin when the argument is '-'
or input is piped.

The text format prints one token per line. The json format prints an array
of token records. The cbor format writes a versioned, digest-checked binary
stream.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") && a.cfg.Format != "" {
				opts.format = outputFormat(a.cfg.Format)
			}

			if !opts.watch {
				return a.runTokens(args, opts)
			}
			if len(args) == 0 || args[0] == "-" {
				return usageError("--watch needs a file path", "Run: jsfront tokens --watch path/to/file.js")
			}
			useColor := ShouldUseColor(a.noColor, a.stderr)
			return watchFile(cmd.Context(), args[0], a.logger,
				func() error { return a.runTokens(args, opts) },
				func(err error) { FormatError(a.stderr, err, useColor) })
		},
	}

	cmd.Flags().Var(&opts.format, "format", "Output format: text, json or cbor")
	cmd.Flags().BoolVar(&opts.first, "first", false, "Print only the first token")
	cmd.Flags().BoolVar(&opts.telemetry, "telemetry", false, "Print per-type token counts to stderr")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-lex the file every time it changes")
	return cmd
}

func (a *app) runTokens(args []string, opts *tokensOptions) error {
	src, err := readSource(args, a.stdin)
	if err != nil {
		return err
	}

	lexOpts := a.lexerOptions()
	if opts.telemetry {
		lexOpts = append(lexOpts, lexer.WithTelemetryBasic())
	}
	lex := lexer.NewLexer(src.text, lexOpts...)

	var tokens []lexer.Token
	if opts.first {
		tok, err := lex.Advance()
		if err != nil {
			return lexFailure(src, err)
		}
		tokens = []lexer.Token{tok}
	} else {
		tokens, err = lex.Tokenize()
		if err != nil {
			return lexFailure(src, err)
		}
	}

	if err := writeTokens(a.stdout, opts.format, tokens); err != nil {
		return ioError(fmt.Errorf("writing tokens: %w", err))
	}
	if opts.telemetry {
		writeTelemetry(a.stderr, lex.TokenTelemetry())
	}
	return nil
}

// lexFailure renders a lexer error with a source snippet.
func lexFailure(src source, err error) error {
	var lexErr *lexer.LexError
	if errors.As(err, &lexErr) {
		return syntaxError(src.name, parser.NewLexerError(src.text, lexErr))
	}
	return syntaxError(src.name, err)
}

func writeTokens(w io.Writer, format outputFormat, tokens []lexer.Token) error {
	switch format {
	case formatJSON:
		records := make([]tokenfmt.Record, len(tokens))
		for i, tok := range tokens {
			records[i] = tokenfmt.NewRecord(tok)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case formatCBOR:
		return tokenfmt.Write(w, tokens)
	default:
		for _, tok := range tokens {
			var err error
			if v, ok := tok.NumericValue(); ok {
				_, err = fmt.Fprintf(w, "%s = %s\n", tok, strconv.FormatFloat(v, 'g', -1, 64))
			} else {
				_, err = fmt.Fprintln(w, tok)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
}

func writeTelemetry(w io.Writer, telemetry map[lexer.TokenType]*lexer.TokenTelemetry) {
	types := make([]lexer.TokenType, 0, len(telemetry))
	total := 0
	for t, tel := range telemetry {
		types = append(types, t)
		total += tel.Count
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, t := range types {
		_, _ = fmt.Fprintf(w, "%-18s %d\n", t, telemetry[t].Count)
	}
	_, _ = fmt.Fprintf(w, "%-18s %d\n", "total", total)
}
