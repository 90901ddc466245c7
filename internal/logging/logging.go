package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

type Logger struct {
	Verbose bool
	Debug   bool
	Out     io.Writer
}

// Enabled reports whether any diagnostic would be written.
func (l Logger) Enabled() bool {
	return l.Verbose || l.Debug
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.printf(color.CyanString("[debug] "), msg, args...)
	}
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.printf(color.GreenString("[info] "), msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.printf(color.YellowString("[warn] "), msg, args...)
	}
}

func (l Logger) Errorf(msg string, args ...any) {
	if l.Debug {
		l.printf(color.RedString("[error] "), msg, args...)
	}
}

func (l Logger) printf(tag, msg string, args ...any) {
	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, tag+msg+"\n", args...)
}
