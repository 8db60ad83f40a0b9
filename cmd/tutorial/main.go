package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/errors"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┬ ┬┌┬┐┌─┐┬─┐  ┌┬┐┬ ┬┌┬┐┌─┐┬─┐┬┌─┐┬
  ├┬┘│ ││ │ │ ├┤ ├┬┘   │ │ │ │ │ │├┬┘│├─┤│
  ┴└─└─┘└─┘ ┴ └─┘┴└─   ┴ └─┘ ┴ └─┘┴└─┴┴ ┴┴─┘
`

func main() {
	rootCmd := newRootCmd()

	err := rootCmd.Execute()
	logging.Flush(2 * time.Second)
	if err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tutorial",
		Short: "A guided tour of client-side routing",
		Long: `tutorial walks through how a client-side router works: path matching,
navigation, view resolution and async data loading that discards stale
results.

Run it in the terminal, serve it to browsers over a websocket, or resolve
paths one at a time from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.noColor {
				errors.DisableColors()
			}
			return a.load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default ./tutorial.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log.level")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		matchCmd(a),
		visitCmd(a),
		tuiCmd(a),
		serveCmd(a),
		fixturesCmd(a),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
