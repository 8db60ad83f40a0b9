package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/tui"
)

func tuiCmd(a *app) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui [path]",
		Short: "Take the tour in the terminal",
		Long: `Take the tour in the terminal.

Keys:
  ←/→    previous / next tour page
  ↑/↓    select a link
  enter  follow the selected link
  r      retry loading data
  b      back to /welcome
  q      quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}

			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				a.quiet(f)
			} else {
				a.quiet(nil)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d := tui.NewDispatcher()
			s, err := a.build(path, d)
			if err != nil {
				return err
			}
			return tui.Run(ctx, tui.New(ctx, s.nav, s.host, d))
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")

	return cmd
}
