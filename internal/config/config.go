// Package config loads and saves bmtree settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmtree/internal/color"
	"github.com/nikbrunner/bmtree/internal/log"
	"github.com/spf13/viper"
)

// Config holds all configuration options for bmtree.
type Config struct {
	DefaultColor   string          `mapstructure:"default_color"`
	SearchDebounce time.Duration   `mapstructure:"search_debounce"`
	LinkCheck      LinkCheckConfig `mapstructure:"link_check"`
	LogPath        string          `mapstructure:"log_path"`
}

// LinkCheckConfig tunes `bmtree check`.
type LinkCheckConfig struct {
	Concurrency    int           `mapstructure:"concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ExcludeDomains []string      `mapstructure:"exclude_domains"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DefaultColor:   "#eeeeee",
		SearchDebounce: 200 * time.Millisecond,
		LinkCheck: LinkCheckConfig{
			Concurrency:    10,
			Timeout:        10 * time.Second,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
		LogPath: "debug.log",
	}
}

// Validate rejects settings the rest of the program cannot use.
func (c Config) Validate() error {
	var errs []error
	if _, err := color.Normalize(c.DefaultColor); err != nil {
		errs = append(errs, fmt.Errorf("default_color: %w", err))
	}
	if c.SearchDebounce <= 0 {
		errs = append(errs, fmt.Errorf("search_debounce must be positive, got %s", c.SearchDebounce))
	}
	if c.LinkCheck.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("link_check.concurrency must be positive, got %d", c.LinkCheck.Concurrency))
	}
	if c.LinkCheck.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("link_check.timeout must be positive, got %s", c.LinkCheck.Timeout))
	}
	return errors.Join(errs...)
}

// DefaultPath returns ~/.config/bmtree/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bmtree", "config.yaml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is created with defaults. BMTREE_* environment
// variables override file values.
func Load(path string) (Config, string, error) {
	v := viper.New()
	setDefaults(v, Defaults())
	v.SetEnvPrefix("bmtree")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Config{}, "", fmt.Errorf("resolving config path: %w", err)
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, path, fmt.Errorf("reading config: %w", err)
		}
		// Non-fatal: continue with defaults when the file cannot be created.
		if writeErr := Save(path, Defaults()); writeErr != nil {
			log.Warn(log.CatConfig, "Could not create default config", "path", path, "error", writeErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, path, fmt.Errorf("decoding config: %w", err)
	}
	if normalized, err := color.Normalize(cfg.DefaultColor); err == nil {
		cfg.DefaultColor = normalized
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, path, fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.Debug(log.CatConfig, "Loaded config", "path", path)
	return cfg, path, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("default_color", d.DefaultColor)
	v.SetDefault("search_debounce", d.SearchDebounce)
	v.SetDefault("link_check.concurrency", d.LinkCheck.Concurrency)
	v.SetDefault("link_check.timeout", d.LinkCheck.Timeout)
	v.SetDefault("link_check.exclude_domains", d.LinkCheck.ExcludeDomains)
	v.SetDefault("log_path", d.LogPath)
}
