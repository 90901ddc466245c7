package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pkt.systems/termlog"
)

func newStripCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "strip [file|-...]",
		Short: "Remove terminal escape sequences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachInput(cmd, args, func(w io.Writer, text string) error {
				_, err := io.WriteString(w, termlog.StripEscape(text))
				return err
			})
		},
	}
}

func newHighlightCmd(_ *rootOptions) *cobra.Command {
	var (
		lexer  string
		indent int
	)
	cmd := &cobra.Command{
		Use:   "highlight [file|-...]",
		Short: "Syntax highlight text for a 256-color terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachInput(cmd, args, func(w io.Writer, text string) error {
				pretty, err := termlog.Beautify(text, indent, lexer)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, pretty)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&lexer, "lexer", "l", "", "chroma lexer name (guessed when empty)")
	cmd.Flags().IntVarP(&indent, "indent", "i", 0, "indent every line by this many spaces")
	return cmd
}

// eachInput runs fn over every input, stdin when none is given.
func eachInput(cmd *cobra.Command, args []string, fn func(io.Writer, string) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, path := range args {
		data, err := readInput(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		if err := fn(cmd.OutOrStdout(), string(data)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
