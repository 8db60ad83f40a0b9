// Package metrics exposes Prometheus collectors for navigation and data
// fetching.
//
// A nil *Collector is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "tutorial").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for fetch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "tutorial",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the router metrics.
type Collector struct {
	navigationsTotal   *prometheus.CounterVec
	activationsTotal   *prometheus.CounterVec
	fetchesTotal       *prometheus.CounterVec
	fetchDuration      *prometheus.HistogramVec
	staleDiscardsTotal *prometheus.CounterVec
	liveClients        prometheus.Gauge
}

// New registers the collectors and returns them.
//
// Metrics collected:
//   - tutorial_navigations_total: navigations by resolved view
//   - tutorial_activations_total: lifecycle activations by view and kind
//   - tutorial_fetches_total: settled fetches by source and outcome
//   - tutorial_fetch_duration_seconds: fetch latency by source
//   - tutorial_stale_discards_total: settlements dropped as superseded
//   - tutorial_live_clients: connected live stream clients
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by resolved view",
			ConstLabels: config.ConstLabels,
		}, []string{"view"}),

		activationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "activations_total",
			Help:        "Total number of data lifecycle activations",
			ConstLabels: config.ConstLabels,
		}, []string{"view", "kind"}),

		fetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fetches_total",
			Help:        "Total number of settled fetches",
			ConstLabels: config.ConstLabels,
		}, []string{"source", "outcome"}),

		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fetch_duration_seconds",
			Help:        "Fetch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"source"}),

		staleDiscardsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stale_discards_total",
			Help:        "Total number of fetch settlements discarded as stale",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		liveClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_clients",
			Help:        "Number of connected live stream clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RecordNavigation counts a navigation that resolved to view.
func (c *Collector) RecordNavigation(view string) {
	if c == nil {
		return
	}
	c.navigationsTotal.WithLabelValues(view).Inc()
}

// RecordActivation counts a lifecycle activation. kind is "activate",
// "reactivate" or "retry".
func (c *Collector) RecordActivation(view, kind string) {
	if c == nil {
		return
	}
	c.activationsTotal.WithLabelValues(view, kind).Inc()
}

// RecordFetch records a settled fetch.
func (c *Collector) RecordFetch(source string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.fetchesTotal.WithLabelValues(source, outcome).Inc()
	c.fetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordStaleDiscard counts a dropped settlement. reason is "key" when the
// params changed and "settled" when the instance had already settled.
func (c *Collector) RecordStaleDiscard(reason string) {
	if c == nil {
		return
	}
	c.staleDiscardsTotal.WithLabelValues(reason).Inc()
}

// ClientConnected increments the live client gauge.
func (c *Collector) ClientConnected() {
	if c == nil {
		return
	}
	c.liveClients.Inc()
}

// ClientDisconnected decrements the live client gauge.
func (c *Collector) ClientDisconnected() {
	if c == nil {
		return
	}
	c.liveClients.Dec()
}
