package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/errors"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultBaseURL, cfg.Source.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Source.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, DefaultLiveAddr, cfg.Live.Addr)
	assert.Equal(t, "json", cfg.Live.Codec)
	assert.Equal(t, DefaultFixturesAddr, cfg.Fixtures.Addr)
	assert.Empty(t, cfg.Routes)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.Source.BaseURL)
	assert.Empty(t, cfg.Path())
	assert.Equal(t, ".", cfg.Dir())
	assert.False(t, Exists(dir))
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tutorial.yaml", `
source:
  base_url: http://localhost:3001
  timeout: 2s
  s3:
    bucket: fixtures
    prefix: v1
log:
  level: debug
  format: json
live:
  codec: msgpack
fixtures:
  delay: 150ms
routes:
  - pattern: /
    view: home
  - pattern: /users/:id
    view: user
  - pattern: "*"
    view: not-found
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.True(t, Exists(dir))
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, dir, cfg.Dir())
	assert.Equal(t, "http://localhost:3001", cfg.Source.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "fixtures", cfg.Source.S3.Bucket)
	assert.Equal(t, "v1", cfg.Source.S3.Prefix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "msgpack", cfg.Live.Codec)
	assert.Equal(t, DefaultLiveAddr, cfg.Live.Addr)
	assert.Equal(t, 150*time.Millisecond, cfg.Fixtures.Delay)

	table, err := cfg.Table(nil)
	require.NoError(t, err)
	assert.Equal(t, router.ViewID("user"), table.Match("/users/3").View())
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.json", `{"live": {"addr": ":9000"}}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Live.Addr)
	assert.Equal(t, DefaultBaseURL, cfg.Source.BaseURL)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tutorial.yaml", "log:\n  level: warn\n")
	t.Setenv("TUTORIAL_LOG_LEVEL", "error")
	t.Setenv("TUTORIAL_SOURCE_TIMEOUT", "3s")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.yaml", "source: [unclosed\n")

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"invalid yaml", broken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			require.Error(t, err)

			var d *errors.Diagnostic
			require.True(t, stderrors.As(err, &d))
			assert.Equal(t, errors.CodeConfigRead, d.Code)
			assert.Equal(t, tt.path, d.Source)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
		source string
	}{
		{"relative base url", func(c *Config) { c.Source.BaseURL = "/api" }, errors.CodeConfigValue, "source.base_url"},
		{"ftp base url", func(c *Config) { c.Source.BaseURL = "ftp://example.com" }, errors.CodeConfigValue, "source.base_url"},
		{"negative timeout", func(c *Config) { c.Source.Timeout = -time.Second }, errors.CodeConfigValue, "source.timeout"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, errors.CodeConfigValue, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, errors.CodeConfigValue, "log.format"},
		{"live addr", func(c *Config) { c.Live.Addr = "" }, errors.CodeConfigValue, "live.addr"},
		{"live codec", func(c *Config) { c.Live.Codec = "protobuf" }, errors.CodeConfigValue, "live.codec"},
		{"fixtures addr", func(c *Config) { c.Fixtures.Addr = "" }, errors.CodeConfigValue, "fixtures.addr"},
		{"fixtures delay", func(c *Config) { c.Fixtures.Delay = -time.Millisecond }, errors.CodeConfigValue, "fixtures.delay"},
		{
			name: "routes without wildcard",
			mutate: func(c *Config) {
				c.Routes = []RouteConfig{{Pattern: "/", View: "home"}}
			},
			code: errors.CodeConfigRoutes,
		},
		{
			name: "wildcard not last",
			mutate: func(c *Config) {
				c.Routes = []RouteConfig{{Pattern: "*", View: "not-found"}, {Pattern: "/", View: "home"}}
			},
			code:   errors.CodeConfigRoutes,
			source: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var d *errors.Diagnostic
			require.True(t, stderrors.As(err, &d))
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, tt.source, d.Source)
		})
	}
}

func TestValidateRoutesKeepsRouterError(t *testing.T) {
	cfg := New()
	cfg.Routes = []RouteConfig{{Pattern: "/users/:", View: "user"}, {Pattern: "*", View: "not-found"}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, router.ErrConfig))

	var d *errors.Diagnostic
	require.True(t, stderrors.As(err, &d))
	assert.NotEmpty(t, d.Suggestion)
}

func TestTableFallback(t *testing.T) {
	fallback := router.MustTable(router.Entry{Pattern: "*", View: "not-found"})

	table, err := New().Table(fallback)
	require.NoError(t, err)
	assert.Same(t, fallback, table)
}
