package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/bmtree/internal/log"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Durations are written in their string
// form ("200ms") so the file stays readable and viper can decode it.
type fileConfig struct {
	DefaultColor   string        `yaml:"default_color"`
	SearchDebounce string        `yaml:"search_debounce"`
	LinkCheck      fileLinkCheck `yaml:"link_check"`
	LogPath        string        `yaml:"log_path"`
}

type fileLinkCheck struct {
	Concurrency    int      `yaml:"concurrency"`
	Timeout        string   `yaml:"timeout"`
	ExcludeDomains []string `yaml:"exclude_domains"`
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	doc := fileConfig{
		DefaultColor:   cfg.DefaultColor,
		SearchDebounce: cfg.SearchDebounce.String(),
		LinkCheck: fileLinkCheck{
			Concurrency:    cfg.LinkCheck.Concurrency,
			Timeout:        cfg.LinkCheck.Timeout.String(),
			ExcludeDomains: cfg.LinkCheck.ExcludeDomains,
		},
		LogPath: cfg.LogPath,
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", path)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Saved config", "path", path)
	return nil
}
