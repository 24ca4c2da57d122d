package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rviscarra/snip/internal/encoders"
	"gopkg.in/yaml.v3"
)

const (
	defaultOutput     = "screenshot.png"
	defaultFormat     = "png"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
	defaultQuality    = 90
	defaultPollPeriod = time.Second / 60
)

// Config holds all runtime configuration for the snip binary
type Config struct {
	Display      int           `yaml:"display"`
	Output       string        `yaml:"output"`
	Format       string        `yaml:"format"`
	Quality      int           `yaml:"quality"`
	MaxWidth     int           `yaml:"max_width"`
	Backend      string        `yaml:"backend"`
	Metadata     bool          `yaml:"metadata"`
	PollInterval time.Duration `yaml:"poll_interval"`
	List         bool          `yaml:"-"`
	HTTP         HTTPConfig    `yaml:"http"`
	Log          LogConfig     `yaml:"log"`
}

// HTTPConfig enables the screenshot server when Port is set
type HTTPConfig struct {
	Port string `yaml:"port"`
}

// LogConfig selects the slog level and handler
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Output:       defaultOutput,
		Format:       defaultFormat,
		Quality:      defaultQuality,
		PollInterval: defaultPollPeriod,
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load reads a YAML file on top of the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse builds the configuration from command line arguments. Values from
// -config are applied first, flags given explicitly win over them.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("snip", flag.ContinueOnError)
	path := fs.String("config", "", "YAML configuration file")
	flags := Default()
	fs.IntVar(&flags.Display, "display", flags.Display, "Display index to capture (0 = primary)")
	fs.StringVar(&flags.Output, "o", flags.Output, "Output file")
	fs.StringVar(&flags.Format, "format", flags.Format, "Image format ("+strings.Join(encoders.Formats(), ", ")+")")
	fs.IntVar(&flags.Quality, "quality", flags.Quality, "JPEG quality (1-100)")
	fs.IntVar(&flags.MaxWidth, "max-width", flags.MaxWidth, "Scale the image down to this width (0 = native)")
	fs.StringVar(&flags.Backend, "backend", flags.Backend, "Force a capture backend by name")
	fs.BoolVar(&flags.Metadata, "metadata", flags.Metadata, "Write a JSON metadata file next to the image")
	fs.DurationVar(&flags.PollInterval, "poll", flags.PollInterval, "Wait between polls of a backend with no frame ready")
	fs.BoolVar(&flags.List, "list", flags.List, "List displays and exit")
	fs.StringVar(&flags.HTTP.Port, "http.port", flags.HTTP.Port, "Serve screenshots over HTTP on this port")
	fs.StringVar(&flags.Log.Level, "log.level", flags.Log.Level, "Log level (debug, info, warn, error)")
	fs.StringVar(&flags.Log.Format, "log.format", flags.Log.Format, "Log format (text, json)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := flags
	if *path != "" {
		var err error
		cfg, err = Load(*path)
		if err != nil {
			return Config{}, err
		}
		fs.Visit(func(f *flag.Flag) {
			if apply, ok := overrides[f.Name]; ok {
				apply(&cfg, flags)
			}
		})
	}
	return cfg, cfg.Validate()
}

var overrides = map[string]func(dst *Config, src Config){
	"display":    func(dst *Config, src Config) { dst.Display = src.Display },
	"o":          func(dst *Config, src Config) { dst.Output = src.Output },
	"format":     func(dst *Config, src Config) { dst.Format = src.Format },
	"quality":    func(dst *Config, src Config) { dst.Quality = src.Quality },
	"max-width":  func(dst *Config, src Config) { dst.MaxWidth = src.MaxWidth },
	"backend":    func(dst *Config, src Config) { dst.Backend = src.Backend },
	"metadata":   func(dst *Config, src Config) { dst.Metadata = src.Metadata },
	"poll":       func(dst *Config, src Config) { dst.PollInterval = src.PollInterval },
	"list":       func(dst *Config, src Config) { dst.List = src.List },
	"http.port":  func(dst *Config, src Config) { dst.HTTP.Port = src.HTTP.Port },
	"log.level":  func(dst *Config, src Config) { dst.Log.Level = src.Log.Level },
	"log.format": func(dst *Config, src Config) { dst.Log.Format = src.Log.Format },
}

// Validate checks value ranges
func (c Config) Validate() error {
	var errs []error
	if c.Display < 0 {
		errs = append(errs, fmt.Errorf("display must not be negative, got %d", c.Display))
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, fmt.Errorf("quality must be 1-100, got %d", c.Quality))
	}
	if !slices.Contains(encoders.Formats(), encoders.Canonical(c.Format)) {
		errs = append(errs, fmt.Errorf("format must be one of %s, got %q", strings.Join(encoders.Formats(), ", "), c.Format))
	}
	if c.MaxWidth < 0 {
		errs = append(errs, fmt.Errorf("max width must not be negative, got %d", c.MaxWidth))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %s", c.PollInterval))
	}
	if strings.TrimSpace(c.Output) == "" && !c.List && c.HTTP.Port == "" {
		errs = append(errs, errors.New("output path must not be empty"))
	}
	if _, err := NormalizeLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NormalizeLogLevel lower-cases a level name and rejects unknown ones
func NormalizeLogLevel(level string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "" {
		return defaultLogLevel, nil
	}
	switch normalized {
	case "debug", "info", "warn", "error":
		return normalized, nil
	}
	return "", fmt.Errorf("unsupported log level %q", level)
}
