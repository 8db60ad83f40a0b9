package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/errors"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/tui"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/live"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/loop"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/resource"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/view"
)

func visitCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "visit <path>",
		Short: "Navigate to a path and print the view once its data has loaded",
		Long: `Navigate to a path, wait for the view's data and print the resulting frame.

Exits non-zero when the data fails to load.

Examples:
  tutorial visit /example
  tutorial visit /example/7 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			frame, err := a.visit(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := json.MarshalWrite(out, live.NewFrame(frame), jsontext.WithIndent("  ")); err != nil {
					return err
				}
				fmt.Fprintln(out)
			} else {
				fmt.Fprint(out, tui.Render(frame))
			}

			if frame.State.Status == resource.Error {
				return errors.From(frame.State.Err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the frame as JSON")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Give up waiting for data after this long")

	return cmd
}

// visit runs the router on a loop until the view at path has settled.
func (a *app) visit(ctx context.Context, path string) (view.Frame, error) {
	l := loop.New(loop.WithLogger(a.logger))
	s, err := a.build(path, l)
	if err != nil {
		return view.Frame{}, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go l.Run(runCtx)

	settled := make(chan view.Frame, 1)
	unsub := s.host.Subscribe(func(f view.Frame) {
		if f.State.Status.Settled() {
			select {
			case settled <- f:
			default:
			}
		}
	})
	defer unsub()

	if err := l.Call(ctx, func() { s.host.Start(runCtx) }); err != nil {
		return view.Frame{}, err
	}
	defer l.Call(context.Background(), s.host.Stop)

	select {
	case f := <-settled:
		return f, nil
	case <-ctx.Done():
		return s.host.Current(), fmt.Errorf("waiting for %s: %w", path, ctx.Err())
	}
}
