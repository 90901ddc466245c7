package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Stderr.WriteString(color.RedString("termlog: ") + err.Error() + "\n")
		os.Exit(1)
	}
}
