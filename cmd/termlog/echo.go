package main

import (
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pkt.systems/termlog"
)

type echoOptions struct {
	json       bool
	color      bool
	timestamp  bool
	raw        bool
	noNewline  bool
	timeFormat string
	lexer      string
	theme      string
	palette    string
	paint      string
	verbosity  int
}

func newEchoCmd(root *rootOptions) *cobra.Command {
	o := &echoOptions{}
	cmd := &cobra.Command{
		Use:   "echo [message...]",
		Short: "Echo a message as text or JSON",
		Long: `Echo joins its arguments with spaces and writes them through termlog.

In JSON mode the line carries a "message" field holding the echoed text,
taken from the variable the command passes to termlog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root.log.Debugf("echo %q", args)
			return runEcho(cmd.OutOrStdout(), cmd.Flags(), o, args)
		},
	}
	fs := cmd.Flags()
	fs.SortFlags = false
	fs.BoolVarP(&o.json, "json", "j", false, "write a JSON line")
	fs.BoolVar(&o.color, "color", false, "enable escape sequences (default: when stdout is a terminal)")
	fs.BoolVarP(&o.timestamp, "timestamp", "t", false, "add a timestamp")
	fs.StringVar(&o.timeFormat, "time-format", termlog.DefaultTimeFormat, "strftime layout of the timestamp")
	fs.StringVarP(&o.lexer, "lexer", "l", "", "highlight text output with this chroma lexer")
	fs.StringVar(&o.theme, "theme", "", "JSON theme")
	fs.StringVarP(&o.palette, "palette", "p", "", "palette for --paint")
	fs.StringVar(&o.paint, "paint", "", "color the message with this palette color")
	fs.BoolVar(&o.raw, "raw", false, "treat the message as a raw JSON document")
	fs.BoolVarP(&o.noNewline, "no-newline", "n", false, "do not write the trailing newline")
	fs.IntVar(&o.verbosity, "verbosity", 1, "verbosity level; 0 silences output")
	return cmd
}

func (o *echoOptions) options(fs *pflag.FlagSet, w io.Writer) []termlog.Option {
	opts := []termlog.Option{termlog.WithOutput(w)}
	if fs.Changed("verbosity") {
		opts = append(opts, termlog.WithVerbosity(o.verbosity))
	}
	if fs.Changed("json") {
		opts = append(opts, termlog.WithJSON(o.json))
	}
	if fs.Changed("color") {
		opts = append(opts, termlog.WithColor(o.color))
	}
	if fs.Changed("timestamp") {
		opts = append(opts, termlog.WithTimestamp(o.timestamp))
	}
	if fs.Changed("time-format") {
		opts = append(opts, termlog.WithTimeFormat(o.timeFormat))
	}
	if fs.Changed("lexer") {
		opts = append(opts, termlog.WithLexer(o.lexer))
	}
	if fs.Changed("theme") {
		opts = append(opts, termlog.WithJSONTheme(o.theme))
	}
	if o.noNewline {
		opts = append(opts, termlog.WithEnd(""))
	}
	return opts
}

func runEcho(w io.Writer, fs *pflag.FlagSet, o *echoOptions, args []string) error {
	logger := termlog.New(o.options(fs, w)...)
	text := strings.Join(args, " ")
	if o.paint != "" {
		name := o.palette
		if name == "" {
			name = logger.Config().Palette
		}
		p, err := termlog.LookupPalette(name)
		if err != nil {
			return err
		}
		c, err := p.Color(o.paint)
		if err != nil {
			return err
		}
		text = c.Wrap(text, termlog.ModeAuto)
	}

	var message any = text
	if o.raw {
		message = json.RawMessage(text)
	}
	_, err := logger.Echo(message)
	return err
}
