package config

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/errors"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

const (
	// ConfigName is the configuration file name without extension.
	ConfigName = "tutorial"

	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "TUTORIAL"

	// DefaultBaseURL is the remote API used when no source is configured.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultLiveAddr is the live server listen address.
	DefaultLiveAddr = "localhost:8080"

	// DefaultFixturesAddr is the local fixture API listen address.
	DefaultFixturesAddr = "localhost:3001"
)

// Config is the complete tutorial configuration.
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Log      LogConfig      `mapstructure:"log"`
	Live     LiveConfig     `mapstructure:"live"`
	Fixtures FixturesConfig `mapstructure:"fixtures"`

	// Routes replaces the built-in route table when non-empty.
	Routes []RouteConfig `mapstructure:"routes"`

	// path is the file the config was loaded from, empty for defaults.
	path string
}

// SourceConfig selects where view data comes from.
type SourceConfig struct {
	// BaseURL is prefixed to relative fetch URLs.
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	S3      S3Config      `mapstructure:"s3"`
}

// S3Config configures the S3 source. When Bucket is set, relative fetch URLs
// are read from the bucket instead of BaseURL.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	PathStyle bool   `mapstructure:"path_style"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// LiveConfig configures the live server.
type LiveConfig struct {
	Addr  string `mapstructure:"addr"`
	Codec string `mapstructure:"codec"`
}

// FixturesConfig configures the local fixture API.
type FixturesConfig struct {
	Addr  string        `mapstructure:"addr"`
	Delay time.Duration `mapstructure:"delay"`
}

// RouteConfig is one route table entry.
type RouteConfig struct {
	Pattern string `mapstructure:"pattern"`
	View    string `mapstructure:"view"`
}

// New returns a configuration with default values.
func New() *Config {
	cfg := &Config{}
	// defaults cannot fail to decode
	_ = newViper().Unmarshal(cfg)
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("source.base_url", DefaultBaseURL)
	v.SetDefault("source.timeout", DefaultTimeout)
	v.SetDefault("source.s3.bucket", "")
	v.SetDefault("source.s3.prefix", "")
	v.SetDefault("source.s3.region", "")
	v.SetDefault("source.s3.endpoint", "")
	v.SetDefault("source.s3.access_key", "")
	v.SetDefault("source.s3.secret_key", "")
	v.SetDefault("source.s3.path_style", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.sentry_dsn", "")
	v.SetDefault("live.addr", DefaultLiveAddr)
	v.SetDefault("live.codec", "json")
	v.SetDefault("fixtures.addr", DefaultFixturesAddr)
	v.SetDefault("fixtures.delay", time.Duration(0))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads tutorial.{yaml,json,toml} from dir. A missing file is not an
// error: defaults and environment overrides apply.
func Load(dir string) (*Config, error) {
	v := newViper()
	v.AddConfigPath(dir)
	v.SetConfigName(ConfigName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, errors.New(errors.CodeConfigRead).Wrap(err)
		}
	}
	return decode(v)
}

// LoadFile reads the configuration from an explicit path. An empty path
// behaves like Load in the working directory.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Load(".")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.New(errors.CodeConfigRead).
			WithDetail("The config file does not exist.").
			WithSource(path).
			Wrap(err)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.New(errors.CodeConfigRead).WithSource(path).Wrap(err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New(errors.CodeConfigValue).
			WithSource(v.ConfigFileUsed()).
			Wrap(fmt.Errorf("unmarshal config: %w", err))
	}
	cfg.path = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.path == "" {
		return "."
	}
	return filepath.Dir(c.path)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("source.base_url", "must be an absolute http(s) URL, got %q", c.Source.BaseURL)
	}
	if c.Source.Timeout < 0 {
		return invalid("source.timeout", "must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level", "unknown level %q", c.Log.Level).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format", "unknown format %q", c.Log.Format).
			WithSuggestion("Use text or json")
	}

	if c.Live.Addr == "" {
		return invalid("live.addr", "must not be empty")
	}
	switch c.Live.Codec {
	case "json", "msgpack":
	default:
		return invalid("live.codec", "unknown codec %q", c.Live.Codec).
			WithSuggestion("Use json or msgpack")
	}

	if c.Fixtures.Addr == "" {
		return invalid("fixtures.addr", "must not be empty")
	}
	if c.Fixtures.Delay < 0 {
		return invalid("fixtures.delay", "must not be negative")
	}

	if len(c.Routes) > 0 {
		if _, err := router.NewTable(c.RouteEntries()...); err != nil {
			d := errors.New(errors.CodeConfigRoutes).Wrap(err)
			var cfgErr *router.ConfigError
			if stderrors.As(err, &cfgErr) {
				d.WithSource(cfgErr.Pattern)
				if tmpl, ok := errors.GetTemplate(cfgErr.Code); ok {
					d.WithSuggestion(tmpl.Hint)
				}
			}
			return d
		}
	}

	return nil
}

func invalid(key, format string, args ...any) *errors.Diagnostic {
	return errors.New(errors.CodeConfigValue).
		WithSource(key).
		WithDetail(fmt.Sprintf(format, args...))
}

// RouteEntries converts the configured routes to router entries.
func (c *Config) RouteEntries() []router.Entry {
	entries := make([]router.Entry, len(c.Routes))
	for i, r := range c.Routes {
		entries[i] = router.Entry{Pattern: r.Pattern, View: router.ViewID(r.View)}
	}
	return entries
}

// Table returns the configured route table, or fallback when none is
// configured.
func (c *Config) Table(fallback *router.Table) (*router.Table, error) {
	if len(c.Routes) == 0 {
		return fallback, nil
	}
	return router.NewTable(c.RouteEntries()...)
}

// Exists reports whether dir contains a tutorial config file.
func Exists(dir string) bool {
	for _, ext := range viper.SupportedExts {
		if _, err := os.Stat(filepath.Join(dir, ConfigName+"."+ext)); err == nil {
			return true
		}
	}
	return false
}
