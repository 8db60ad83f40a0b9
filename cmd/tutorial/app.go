package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/config"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/errors"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/logging"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/tutorial"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/fetch"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/loop"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/metrics"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/navigation"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/view"
)

// app holds what every command shares: flags, config and logger.
type app struct {
	configPath string
	logLevel   string
	noColor    bool

	cfg    *config.Config
	logger *slog.Logger
}

// load reads the config and sets up logging.
func (a *app) load() error {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.logger = logging.New(os.Stderr, logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		SentryDSN: cfg.Log.SentryDSN,
	})
	slog.SetDefault(a.logger)
	return nil
}

// quiet replaces the logger with one writing to w. The terminal UI uses it
// to keep log lines off the screen.
func (a *app) quiet(w io.Writer) {
	if w == nil {
		a.logger = logging.Nope()
		return
	}
	a.logger = logging.New(w, logging.Config{Level: a.cfg.Log.Level, Format: a.cfg.Log.Format})
}

// routes returns the route table and a registry covering it.
func (a *app) routes() (*router.Table, *view.Registry, error) {
	table, err := a.cfg.Table(tutorial.Table())
	if err != nil {
		return nil, nil, errors.New(errors.CodeConfigRoutes).WithSource(a.cfg.Path()).Wrap(err)
	}
	registry := tutorial.Registry(table)
	if err := registry.Validate(table); err != nil {
		return nil, nil, errors.From(err)
	}
	for _, e := range table.Shadowed() {
		a.logger.Warn("route can never match", "pattern", e.Pattern, "view", e.View)
	}
	return table, registry, nil
}

// source builds the data source. Relative URLs go to the S3 bucket when one
// is configured and to the base URL otherwise.
func (a *app) source(m *metrics.Collector) (fetch.Source, error) {
	h, err := fetch.NewHTTP(a.cfg.Source.BaseURL,
		fetch.WithTimeout(a.cfg.Source.Timeout),
		fetch.WithMetrics(m),
		fetch.WithLogger(a.logger))
	if err != nil {
		return nil, errors.New(errors.CodeConfigValue).WithSource("source.base_url").Wrap(err)
	}

	var fallback fetch.Source = h
	var bucket *fetch.S3
	if s3cfg := a.cfg.Source.S3; s3cfg.Bucket != "" {
		client := fetch.NewS3Client(fetch.S3Config{
			Region:    s3cfg.Region,
			Endpoint:  s3cfg.Endpoint,
			AccessKey: s3cfg.AccessKey,
			SecretKey: s3cfg.SecretKey,
			PathStyle: s3cfg.PathStyle,
		})
		bucket = fetch.NewS3(client, s3cfg.Bucket, s3cfg.Prefix, fetch.WithS3Metrics(m))
		fallback = bucket
	}

	mux := fetch.NewMux(fallback).Handle("http", h).Handle("https", h)
	if bucket != nil {
		mux.Handle("s3", bucket)
	}
	return mux, nil
}

// stack is a wired router core.
type stack struct {
	nav      *navigation.Controller
	host     *view.Host
	metrics  *metrics.Collector
	registry *prometheus.Registry
}

// build wires the router core around d. Nothing runs until the host is
// started on d's goroutine.
func (a *app) build(initial string, d loop.Dispatcher) (*stack, error) {
	table, views, err := a.routes()
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(metrics.WithRegistry(reg))

	src, err := a.source(m)
	if err != nil {
		return nil, err
	}

	nav := navigation.New(table,
		navigation.WithInitialPath(initial),
		navigation.WithLogger(a.logger),
		navigation.WithMetrics(m))
	navigation.SetDefault(nav)

	host := view.NewHost(nav, views, view.Deps{
		Source:     src,
		Dispatcher: d,
		Logger:     a.logger,
		Metrics:    m,
	}, view.WithHostLogger(a.logger))

	return &stack{nav: nav, host: host, metrics: m, registry: reg}, nil
}
