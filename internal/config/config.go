// Package config loads converter settings from defaults, an optional TOML
// or YAML file and CONTENT_* environment variables, in that order
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/class"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/filter"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "CONTENT_"

// Record sources
const (
	SourceFiles = "files"
	SourceAPI   = "api"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Log formats
const (
	LogText = "text"
	LogJSON = "json"
)

// Config holds every converter setting
type Config struct {
	// Source is where raw records come from: "files" or "api"
	Source string `env:"SOURCE" toml:"source" yaml:"source"`
	// DataDir is the root of the raw content files
	DataDir string `env:"DATA_DIR" toml:"data_dir" yaml:"data_dir"`
	// APIBaseURL overrides the dnd5e API endpoint
	APIBaseURL string `env:"API_BASE_URL" toml:"api_base_url" yaml:"api_base_url"`

	FilterMode    string `env:"FILTER_MODE" toml:"filter_mode" yaml:"filter_mode"`
	Ruleset       string `env:"RULESET" toml:"ruleset" yaml:"ruleset"`
	MarkupMode    string `env:"MARKUP_MODE" toml:"markup_mode" yaml:"markup_mode"`
	ResolveAssets bool   `env:"RESOLVE_ASSETS" toml:"resolve_assets" yaml:"resolve_assets"`

	// Concurrency bounds how many categories convert at once; 0 means
	// GOMAXPROCS
	Concurrency        int `env:"CONCURRENCY" toml:"concurrency" yaml:"concurrency"`
	ReadTimeoutSeconds int `env:"READ_TIMEOUT_SECONDS" toml:"read_timeout_seconds" yaml:"read_timeout_seconds"`

	// RedisAddrs enables the redis document sink; more than one address
	// selects a cluster client
	RedisAddrs    []string `env:"REDIS_ADDRS" envSeparator:"," toml:"redis_addrs" yaml:"redis_addrs"`
	RedisPassword string   `env:"REDIS_PASSWORD" toml:"redis_password" yaml:"redis_password"`

	OutputDir    string `env:"OUTPUT_DIR" toml:"output_dir" yaml:"output_dir"`
	OutputFormat string `env:"OUTPUT_FORMAT" toml:"output_format" yaml:"output_format"`

	LogLevel  string `env:"LOG_LEVEL" toml:"log_level" yaml:"log_level"`
	LogFormat string `env:"LOG_FORMAT" toml:"log_format" yaml:"log_format"`
}

// Default returns the settings used when nothing overrides them
func Default() *Config {
	return &Config{
		Source:             SourceFiles,
		DataDir:            "data",
		FilterMode:         string(filter.ModeSRD),
		Ruleset:            "2024",
		MarkupMode:         string(markup.ModePlain),
		ReadTimeoutSeconds: 30,
		OutputDir:          "out",
		OutputFormat:       FormatJSON,
		LogLevel:           "info",
		LogFormat:          LogText,
	}
}

// Load builds a Config from defaults, then the file at path when path is
// not empty, then the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFoundf("config file %s not found", path)
		}
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid TOML in %s", path)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid YAML in %s", path)
		}
	default:
		return errors.InvalidArgumentf("unsupported config file type %q", filepath.Ext(path))
	}
	return nil
}

// Validate checks every setting and normalizes case
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	switch cfg.Source {
	case SourceFiles:
		if cfg.DataDir == "" {
			vb.RequiredField("data_dir")
		}
	default:
		errors.ValidateEnum("source", cfg.Source, []string{SourceFiles, SourceAPI}, vb)
	}

	if _, err := filter.ParseMode(cfg.FilterMode); err != nil {
		vb.InvalidField("filter_mode", "must be srd or all")
	}
	if _, err := markup.ParseMode(cfg.MarkupMode); err != nil {
		vb.InvalidField("markup_mode", "must be plain or markdown")
	}
	if _, ok := class.Rulesets[cfg.Ruleset]; cfg.Ruleset != "" && !ok {
		vb.InvalidField("ruleset", "must be 2024, 2014 or empty")
	}
	if cfg.Concurrency < 0 {
		vb.InvalidField("concurrency", "cannot be negative")
	}
	if cfg.ReadTimeoutSeconds <= 0 {
		vb.InvalidField("read_timeout_seconds", "must be positive")
	}

	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	errors.ValidateEnum("output_format", cfg.OutputFormat, []string{FormatJSON, FormatYAML}, vb)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	errors.ValidateEnum("log_format", cfg.LogFormat, []string{LogText, LogJSON}, vb)
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		vb.InvalidField("log_level", "must be debug, info, warn or error")
	}

	return vb.Build()
}

// Filter returns the licensing mode
func (cfg *Config) Filter() filter.Mode {
	mode, _ := filter.ParseMode(cfg.FilterMode)
	return mode
}

// PipelineOptions returns the conversion options
func (cfg *Config) PipelineOptions() pipeline.Options {
	mode, _ := markup.ParseMode(cfg.MarkupMode)
	return pipeline.Options{
		MarkupMode:    mode,
		ResolveAssets: cfg.ResolveAssets,
		Ruleset:       cfg.Ruleset,
	}
}

// ReadTimeout bounds one source file read
func (cfg *Config) ReadTimeout() time.Duration {
	return time.Duration(cfg.ReadTimeoutSeconds) * time.Second
}

// SlogLevel returns the parsed log level, info when unparseable
func (cfg *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
