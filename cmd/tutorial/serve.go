package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/fixture"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/live"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/loop"
)

func serveCmd(a *app) *cobra.Command {
	var (
		addr      string
		codec     string
		fixtures  bool
		anyOrigin bool
	)

	cmd := &cobra.Command{
		Use:   "serve [path]",
		Short: "Serve the router to browsers over a websocket",
		Long: `Serve the router over HTTP. Browsers connect to /ws and receive a
frame for every navigation and data transition.

With --fixtures the local users API is started in-process and used as the
data source.

Examples:
  tutorial serve
  tutorial serve --addr=:8080 --codec=msgpack
  tutorial serve --fixtures`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Live.Addr = addr
			}
			if codec != "" {
				a.cfg.Live.Codec = codec
			}
			if fixtures {
				a.cfg.Source.BaseURL = "http://" + a.cfg.Fixtures.Addr
				a.cfg.Source.S3.Bucket = ""
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			path := "/"
			if len(args) == 1 {
				path = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, path, fixtures, anyOrigin)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from live.addr)")
	cmd.Flags().StringVar(&codec, "codec", "", "Default frame codec: json or msgpack")
	cmd.Flags().BoolVar(&fixtures, "fixtures", false, "Serve the local users API and load data from it")
	cmd.Flags().BoolVar(&anyOrigin, "any-origin", false, "Accept websocket connections from any origin")

	return cmd
}

func (a *app) serve(ctx context.Context, path string, fixtures, anyOrigin bool) error {
	codec, err := live.CodecFor(a.cfg.Live.Codec)
	if err != nil {
		return err
	}

	l := loop.New(loop.WithLogger(a.logger))
	s, err := a.build(path, l)
	if err != nil {
		return err
	}

	opts := []live.Option{
		live.WithLogger(a.logger),
		live.WithMetrics(s.metrics, s.registry),
		live.WithCodec(codec),
	}
	if anyOrigin {
		opts = append(opts, live.WithCheckOrigin(func(*http.Request) bool { return true }))
	}
	srv := live.New(l, s.nav, s.host, opts...)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return l.Run(ctx) })

	if fixtures {
		data, err := fixture.Load()
		if err != nil {
			return err
		}
		fx := fixture.NewServer(a.cfg.Fixtures.Addr, data,
			fixture.WithLogger(a.logger),
			fixture.WithDelay(a.cfg.Fixtures.Delay))
		g.Go(func() error { return runHTTP(ctx, fx) })
		info("Users API on http://%s", a.cfg.Fixtures.Addr)
	}

	if err := l.Call(ctx, func() { s.host.Start(ctx) }); err != nil {
		return err
	}
	g.Go(func() error { return srv.Run(ctx, a.cfg.Live.Addr) })

	printBanner()
	success("Serving on http://%s (codec %s)", a.cfg.Live.Addr, codec.Name())
	info("Data from %s", a.cfg.Source.BaseURL)

	err = g.Wait()
	if err != nil && !stderrors.Is(err, context.Canceled) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// runHTTP serves srv until ctx is done.
func runHTTP(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), live.DefaultShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
