// Package config loads server and CLI settings from flags, an optional .env
// file, an optional YAML file and TZSELECT_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-tzselect/components/timezones"
)

type Config struct {
	Addr         string   `yaml:"addr" env:"TZSELECT_ADDR" help:"HTTP listen address." default:":8080"`
	BasePath     string   `yaml:"basePath" env:"TZSELECT_BASE_PATH" help:"Prefix for every route." default:"/"`
	RoutePath    string   `yaml:"routePath" env:"TZSELECT_ROUTE_PATH" help:"Timezone search route under the base path." default:"/api/timezones"`
	DefaultLimit int      `yaml:"defaultLimit" env:"TZSELECT_DEFAULT_LIMIT" help:"Results returned when no limit is given." default:"50"`
	MaxLimit     int      `yaml:"maxLimit" env:"TZSELECT_MAX_LIMIT" help:"Upper bound for the limit parameter." default:"200"`
	EmptySearch  string   `yaml:"emptySearch" env:"TZSELECT_EMPTY_SEARCH" help:"Result of an empty query: top or none." default:"top"`
	LabelStyle   string   `yaml:"labelStyle" env:"TZSELECT_LABEL_STYLE" help:"Option labels: original, abbrev or altName." default:"original"`
	CatalogFile  string   `yaml:"catalogFile" env:"TZSELECT_CATALOG_FILE" help:"YAML list of {id, title} replacing the built-in catalog."`
	CORSOrigins  []string `yaml:"corsOrigins" env:"TZSELECT_CORS_ORIGINS" envSeparator:"," help:"Allowed CORS origins." sep:","`
	Theme        string   `yaml:"theme" env:"TZSELECT_THEME" help:"Theme for the HTML page." default:"tzselect"`
	ThemeVariant string   `yaml:"themeVariant" env:"TZSELECT_THEME_VARIANT" help:"Theme variant for the HTML page."`
	LogLevel     string   `yaml:"logLevel" env:"TZSELECT_LOG_LEVEL" help:"Log level." default:"info"`
	LogFormat    string   `yaml:"logFormat" env:"TZSELECT_LOG_FORMAT" help:"Log format: console or json." default:"console"`
}

// Default mirrors the flag defaults for callers that do not parse flags.
func Default() Config {
	return Config{
		Addr:         ":8080",
		BasePath:     "/",
		RoutePath:    "/api/timezones",
		DefaultLimit: 50,
		MaxLimit:     200,
		EmptySearch:  string(timezones.EmptySearchTop),
		LabelStyle:   string(timezones.LabelOriginal),
		Theme:        "tzselect",
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

// LoadEnvFile exports the variables of a .env file. Variables already set in
// the environment win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load env file %q: %w", path, err)
	}
	return nil
}

// LoadYAML overlays the keys present in the YAML file at path onto cfg.
func LoadYAML(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	return nil
}

// ParseEnv overlays TZSELECT_ variables onto cfg. Unset variables leave the
// current values alone.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}
	return nil
}

// Load applies the env file, the YAML file and the environment in that order,
// skipping empty paths, then validates. A missing env file is not an error.
func Load(envFile, yamlFile string, cfg *Config) error {
	if err := load(envFile, yamlFile, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func load(envFile, yamlFile string, cfg *Config) error {
	if envFile != "" {
		if err := LoadEnvFile(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if yamlFile != "" {
		if err := LoadYAML(yamlFile, cfg); err != nil {
			return err
		}
	}
	return ParseEnv(cfg)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs *multierror.Error
	if strings.TrimSpace(c.Addr) == "" {
		errs = multierror.Append(errs, errors.New("addr is required"))
	}
	if c.DefaultLimit <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("defaultLimit must be positive, got %d", c.DefaultLimit))
	}
	if c.MaxLimit < c.DefaultLimit {
		errs = multierror.Append(errs, fmt.Errorf("maxLimit %d is below defaultLimit %d", c.MaxLimit, c.DefaultLimit))
	}
	if _, err := timezones.ParseEmptySearchMode(c.EmptySearch); err != nil {
		errs = multierror.Append(errs, err)
	}
	if _, err := timezones.ParseLabelStyle(c.LabelStyle); err != nil {
		errs = multierror.Append(errs, err)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("log level: %w", err))
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		errs = multierror.Append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// TimezoneOptions translates the settings into component options. The
// catalog file, when set, is read here.
func (c Config) TimezoneOptions() ([]timezones.OptionFn, error) {
	mode, err := timezones.ParseEmptySearchMode(c.EmptySearch)
	if err != nil {
		return nil, err
	}
	style, err := timezones.ParseLabelStyle(c.LabelStyle)
	if err != nil {
		return nil, err
	}

	fns := []timezones.OptionFn{
		timezones.WithRoutePath(c.RoutePath),
		timezones.WithDefaultLimit(c.DefaultLimit),
		timezones.WithMaxLimit(c.MaxLimit),
		timezones.WithEmptySearchMode(mode),
		timezones.WithLabelStyle(style),
	}

	if c.CatalogFile != "" {
		f, err := os.Open(c.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("config: open catalog file: %w", err)
		}
		defer func() { _ = f.Close() }()

		entries, err := timezones.LoadEntries(f)
		if err != nil {
			return nil, fmt.Errorf("config: catalog file %q: %w", c.CatalogFile, err)
		}
		fns = append(fns, timezones.WithEntries(entries))
	}
	return fns, nil
}
