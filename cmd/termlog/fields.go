package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"pkt.systems/termlog"
)

type fieldsOptions struct {
	json     bool
	maxNodes int
}

func newFieldsCmd(root *rootOptions) *cobra.Command {
	o := &fieldsOptions{}
	cmd := &cobra.Command{
		Use:   "fields file|- [file|-...]",
		Short: "List the variable names a Go snippet refers to",
		Long: `Extract the names termlog would attach as JSON fields when the snippet
is the expression that calls it. Input may be a Go file, a statement list
or a declaration list; "-" reads stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("max-nodes") {
				termlog.SetConfig(termlog.WithMaxNodes(o.maxNodes))
			}
			w := cmd.OutOrStdout()
			for _, path := range args {
				src, err := readInput(cmd.InOrStdin(), path)
				if err != nil {
					return err
				}
				fields, err := termlog.ExtractFields(string(src))
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				root.log.Infof("%s: %d fields", path, fields.Len())
				names := fields.Keys()
				if names == nil {
					names = []string{}
				}
				if o.json {
					out, err := json.Marshal(names)
					if err != nil {
						return err
					}
					fmt.Fprintln(w, string(out))
					continue
				}
				for _, name := range names {
					fmt.Fprintln(w, name)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&o.json, "json", "j", false, "print a JSON array per input")
	cmd.Flags().IntVar(&o.maxNodes, "max-nodes", 4096, "maximum syntax nodes visited per input")
	return cmd
}
