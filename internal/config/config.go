// Package config layers swatch settings from defaults, a YAML config file,
// a .env file, SWATCH_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jmylchreest/swatch/internal/colour"
)

const (
	configDirName  = "swatch"
	configFileName = "config"
	configFileType = "yaml"

	// EnvPrefix prefixes every environment variable read by swatch.
	EnvPrefix = "SWATCH"
)

// Keys shared by the config file, environment and flag bindings.
const (
	KeyMode              = "mode"
	KeyCount             = "count"
	KeyReference         = "reference"
	KeyFormat            = "format"
	KeyPreview           = "preview"
	KeyLogLevel          = "log_level"
	KeyExtractAlgorithm  = "extract.algorithm"
	KeyExtractMaxColours = "extract.max_colours"
	KeyExtractStride     = "extract.stride"
	KeyExtractCache      = "extract.cache"
	KeyExtractTimeout    = "extract.timeout"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Preview settings.
const (
	PreviewAuto   = "auto"
	PreviewAlways = "always"
	PreviewNever  = "never"
)

// Config is the resolved swatch configuration.
type Config struct {
	Mode      string        `mapstructure:"mode"`
	Count     int           `mapstructure:"count"`
	Reference string        `mapstructure:"reference"`
	Format    string        `mapstructure:"format"`
	Preview   string        `mapstructure:"preview"`
	LogLevel  string        `mapstructure:"log_level"`
	Extract   ExtractConfig `mapstructure:"extract"`
}

// ExtractConfig holds image extraction settings.
type ExtractConfig struct {
	Algorithm  string        `mapstructure:"algorithm"`
	MaxColours int           `mapstructure:"max_colours"`
	Stride     int           `mapstructure:"stride"`
	Cache      bool          `mapstructure:"cache"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Options control where Load looks for settings.
type Options struct {
	// ConfigFile is an explicit config file. It must exist when set.
	ConfigFile string

	// DotEnv is a .env file loaded into the process environment before
	// variables are read. Existing variables are not overridden. A missing
	// file is ignored.
	DotEnv string
}

// DefaultDir returns the directory searched for config.yaml.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName)
}

// NewViper returns a viper instance with defaults and environment binding
// in place. Callers may bind flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyMode, string(colour.DefaultMode))
	v.SetDefault(KeyCount, colour.DefaultCount)
	v.SetDefault(KeyReference, "#ffffff")
	v.SetDefault(KeyFormat, FormatText)
	v.SetDefault(KeyPreview, PreviewAuto)
	v.SetDefault(KeyLogLevel, "warn")

	v.SetDefault(KeyExtractAlgorithm, string(colour.AlgorithmDominant))
	v.SetDefault(KeyExtractMaxColours, colour.DefaultMaxColours)
	v.SetDefault(KeyExtractStride, 1)
	v.SetDefault(KeyExtractCache, false)
	v.SetDefault(KeyExtractTimeout, 30*time.Second)
}

// Load reads the config file and environment into v and returns the
// validated result.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	if opts.DotEnv != "" {
		if err := loadDotEnv(opts.DotEnv); err != nil {
			return nil, err
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(DefaultDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.normalise()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalise() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Preview = strings.ToLower(strings.TrimSpace(c.Preview))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Extract.Algorithm = strings.ToLower(strings.TrimSpace(c.Extract.Algorithm))
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if _, err := colour.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Count < 1 {
		errs = append(errs, fmt.Errorf("count must be at least 1, got %d", c.Count))
	}
	if !colour.Valid(c.Reference) {
		errs = append(errs, fmt.Errorf("reference %q: %w", c.Reference, colour.ErrInvalidColour))
	}
	if !slices.Contains([]string{FormatText, FormatJSON}, c.Format) {
		errs = append(errs, fmt.Errorf("format must be %s or %s, got %q", FormatText, FormatJSON, c.Format))
	}
	if !slices.Contains([]string{PreviewAuto, PreviewAlways, PreviewNever}, c.Preview) {
		errs = append(errs, fmt.Errorf("preview must be auto, always or never, got %q", c.Preview))
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if c.Extract.Timeout < 0 {
		errs = append(errs, fmt.Errorf("extract timeout cannot be negative"))
	}
	if err := c.ExtractorConfig().Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// HarmonyMode returns the configured mode. Validate has already rejected
// unknown names.
func (c *Config) HarmonyMode() colour.Mode {
	m, err := colour.ParseMode(c.Mode)
	if err != nil {
		return colour.DefaultMode
	}
	return m
}

// ReferenceColour returns the contrast reference, white if unparsable.
func (c *Config) ReferenceColour() colour.Color {
	ref, err := colour.Parse(c.Reference)
	if err != nil {
		return colour.White
	}
	return ref
}

// Level returns the configured log level.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}

// ExtractorConfig converts the extract settings for the colour package.
func (c *Config) ExtractorConfig() colour.ExtractorConfig {
	return colour.ExtractorConfig{
		Algorithm:  colour.Algorithm(c.Extract.Algorithm),
		ColorCount: c.Extract.MaxColours,
		Stride:     c.Extract.Stride,
	}
}
