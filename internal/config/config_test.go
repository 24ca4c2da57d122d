package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, time.Second/60, cfg.PollInterval)
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse([]string{"-display", "1", "-format", "jpeg", "-quality", "70", "-max-width", "800", "-list"})
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Display)
	assert.Equal(t, "jpeg", cfg.Format)
	assert.Equal(t, 70, cfg.Quality)
	assert.Equal(t, 800, cfg.MaxWidth)
	assert.True(t, cfg.List)
}

func TestParseConfigFileWithOverrides(t *testing.T) {
	path := writeConfig(t, `
display: 2
format: bmp
output: shots/out.bmp
poll_interval: 5ms
http:
  port: "9000"
log:
  level: debug
  format: json
`)
	cfg, err := Parse([]string{"-config", path, "-display", "0"})
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Display)
	assert.Equal(t, "bmp", cfg.Format)
	assert.Equal(t, "shots/out.bmp", cfg.Output)
	assert.Equal(t, 5*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, defaultQuality, cfg.Quality)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "display: [nope"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"negative display": func(c *Config) { c.Display = -1 },
		"quality":          func(c *Config) { c.Quality = 0 },
		"format":           func(c *Config) { c.Format = "gif" },
		"max width":        func(c *Config) { c.MaxWidth = -5 },
		"poll":             func(c *Config) { c.PollInterval = 0 },
		"output":           func(c *Config) { c.Output = " " },
		"log level":        func(c *Config) { c.Log.Level = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestFormatAliasesValidate(t *testing.T) {
	for _, format := range []string{"png", "JPG", "jpeg", "bmp", "tif", "tiff"} {
		cfg := Default()
		cfg.Format = format
		assert.NoError(t, cfg.Validate(), format)
	}
}

func TestEmptyOutputAllowedWhenServing(t *testing.T) {
	cfg := Default()
	cfg.Output = ""
	cfg.HTTP.Port = "9000"
	assert.NoError(t, cfg.Validate())
}

func TestNormalizeLogLevel(t *testing.T) {
	lvl, err := NormalizeLogLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, "warn", lvl)

	lvl, err = NormalizeLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, "info", lvl)

	_, err = NormalizeLogLevel("trace")
	assert.Error(t, err)
}
