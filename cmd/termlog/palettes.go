package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/termlog"
)

func newPalettesCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the registered palettes and JSON themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "palettes:")
			for _, name := range termlog.PaletteNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintln(w, "json themes:")
			for _, name := range termlog.JSONThemeNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			return nil
		},
	}
}
