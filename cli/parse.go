package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/jsfront/runtime/parser"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a source file and print its syntax tree as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args, a.stdin)
			if err != nil {
				return err
			}

			prog, err := parser.Parse(src.text,
				parser.WithLogger(a.logger),
				parser.WithLexerOptions(a.lexerOptions()...))
			if err != nil {
				return syntaxError(src.name, err)
			}

			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(prog); err != nil {
				return ioError(fmt.Errorf("writing syntax tree: %w", err))
			}
			return nil
		},
	}
}
