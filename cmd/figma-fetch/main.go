// Main package for the figma-fetch command line tool.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/designsync/figma-fetch/cmd/figma-fetch/commands"
	"github.com/designsync/figma-fetch/internal/constants"
	"github.com/fatih/color"
)

func main() {
	slog.SetLogLoggerLevel(constants.DefaultLogLevel)

	a, err := commands.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(a, os.Stderr))
}

type app interface {
	Run() error
}

// run executes the app and returns the process exit code, reporting any error on stderr.
func run(a app, stderr io.Writer) int {
	if err := a.Run(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(stderr, "[ERROR]")
		fmt.Fprintf(stderr, " %v\n", err)
		return 1
	}

	return 0
}
