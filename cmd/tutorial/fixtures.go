package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/fixture"
)

func fixturesCmd(a *app) *cobra.Command {
	var (
		addr  string
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Serve the users and todos API locally",
		Long: `Serve a local copy of the users and todos API used by the example pages.

Endpoints:
  GET /users
  GET /users/{id}
  GET /users/{id}/todos

Point source.base_url at it to run the tutorial offline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Fixtures.Addr
			}
			if !cmd.Flags().Changed("delay") {
				delay = a.cfg.Fixtures.Delay
			}

			data, err := fixture.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := fixture.NewServer(addr, data,
				fixture.WithLogger(a.logger),
				fixture.WithDelay(delay))

			success("Users API on http://%s", addr)
			if delay > 0 {
				info("Responses delayed by %s", delay)
			}
			return runHTTP(ctx, srv)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from fixtures.addr)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Delay every response by this long")

	return cmd
}
