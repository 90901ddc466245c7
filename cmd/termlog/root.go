package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pkt.systems/termlog"
	"pkt.systems/termlog/internal/logging"
)

const defaultEnvFile = ".env"

type rootOptions struct {
	verbose  bool
	debug    bool
	envFiles []string

	log logging.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "termlog",
		Short: "termlog - colored, structured terminal output",
		Long: `termlog colors terminal text and echoes messages as plain text or JSON,
adding the variables named in the echoing expression as JSON fields.

Configuration is read from TERMLOG_* environment variables, optionally
loaded from .env files first.

Examples:
  # Show every palette
  termlog demo

  # Echo a JSON line
  termlog echo --json --color=false hello world

  # List the fields a Go snippet refers to
  echo 'x := a + b' | termlog fields -`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.log = logging.Logger{Verbose: o.verbose, Debug: o.debug, Out: cmd.ErrOrStderr()}
			o.log.Debugf("initializing termlog with verbose=%t, debug=%t", o.verbose, o.debug)
			return o.loadConfig()
		},
	}
	addRootFlags(cmd.PersistentFlags(), o)
	cmd.AddCommand(
		newDemoCmd(o),
		newPalettesCmd(o),
		newEchoCmd(o),
		newFieldsCmd(o),
		newStripCmd(o),
		newHighlightCmd(o),
	)
	return cmd
}

func addRootFlags(fs *pflag.FlagSet, o *rootOptions) {
	fs.SortFlags = false
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose output")
	fs.BoolVarP(&o.debug, "debug", "d", false, "enable debug output")
	fs.StringSliceVar(&o.envFiles, "env-file", nil, "load TERMLOG_* variables from these files (default .env when present)")
}

// loadConfig loads the env files and installs the resulting process-wide
// configuration. Invalid TERMLOG_* values are reported and skipped.
func (o *rootOptions) loadConfig() error {
	files := o.envFiles
	if len(files) == 0 {
		if _, err := os.Stat(defaultEnvFile); err == nil {
			files = []string{defaultEnvFile}
		}
	}
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return fmt.Errorf("load env files: %w", err)
		}
		o.log.Infof("loaded environment from %v", files)
	}
	cfg, err := termlog.ConfigFromEnv()
	if err != nil {
		o.log.Warnf("ignoring invalid environment: %v", err)
	}
	if o.debug {
		cfg.Debug = true
	}
	termlog.SetConfig(termlog.WithConfig(cfg))
	return nil
}

// readInput reads path, or stdin for "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
