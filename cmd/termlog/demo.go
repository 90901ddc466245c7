package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"pkt.systems/termlog"
)

type demoOptions struct {
	palette  string
	mode     string
	noBanner bool
}

func newDemoCmd(root *rootOptions) *cobra.Command {
	o := &demoOptions{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Show the colors and styles of the palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := parseMode(o.mode)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("mode") && !termlog.CurrentConfig().Color {
				mode = termlog.ModeNone
			}
			root.log.Debugf("demo with palette=%q mode=%q", o.palette, o.mode)
			return runDemo(cmd.OutOrStdout(), o, mode)
		},
	}
	cmd.Flags().StringVarP(&o.palette, "palette", "p", "", "only show this palette")
	cmd.Flags().StringVar(&o.mode, "mode", "auto", "escape sequences to use: auto, term, true or none")
	cmd.Flags().BoolVar(&o.noBanner, "no-banner", false, "do not print the banner")
	return cmd
}

func parseMode(name string) (termlog.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return termlog.ModeAuto, nil
	case "term", "16":
		return termlog.ModeTerm, nil
	case "true", "truecolor", "24bit":
		return termlog.ModeTrue, nil
	case "none", "off":
		return termlog.ModeNone, nil
	}
	return termlog.ModeAuto, fmt.Errorf("unknown mode %q (use one of: auto, term, true, none)", name)
}

var demoStyles = []struct {
	label string
	style termlog.Style
}{
	{"bright", termlog.Style{Bright: true}},
	{"dim", termlog.Style{Dim: true}},
	{"italics", termlog.Style{Italics: true}},
	{"underlined", termlog.Style{Underlined: true}},
	{"double underlined", termlog.Style{DoubleUnderlined: true}},
	{"blinking", termlog.Style{Blinking: true}},
	{"strobing", termlog.Style{Strobing: true}},
	{"inverted", termlog.Style{Inverted: true}},
	{"strike-through", termlog.Style{StrikeThrough: true}},
	{"hidden", termlog.Style{Hidden: true}},
}

const demoSnippet = `func greet(name string) string {
	return "hello " + name
}`

func runDemo(w io.Writer, o *demoOptions, mode termlog.Mode) error {
	if !o.noBanner {
		fmt.Fprintln(w, figure.NewFigure("termlog", "", true).String())
	}

	names := termlog.PaletteNames()
	if o.palette != "" {
		names = []string{o.palette}
	}
	for _, name := range names {
		p, err := termlog.LookupPalette(name)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, p.Name)
		for _, cname := range p.Names() {
			c, err := p.Color(cname)
			if err != nil {
				return err
			}
			rgb := fmt.Sprintf("rgb(%d, %d, %d)", c.Red, c.Green, c.Blue)
			fmt.Fprintf(w, "  %s %s\n", c.Wrap(fmt.Sprintf("%-16s", cname), mode), rgb)
		}
		fmt.Fprintln(w)
	}

	base, err := termlog.DefaultPalette().Color("white")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "styles")
	for _, s := range demoStyles {
		c := base
		c.Style = s.style
		fmt.Fprintf(w, "  %s\n", c.Wrap(s.label, mode))
	}

	if mode != termlog.ModeNone {
		fmt.Fprintln(w)
		pretty, err := termlog.Beautify(demoSnippet, 2, "go")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, pretty)
	}
	return nil
}
