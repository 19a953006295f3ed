package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestDefaults_AreValid(t *testing.T) {
	assert.NilError(t, Defaults().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad color", func(c *Config) { c.DefaultColor = "blue" }, "default_color"},
		{"zero debounce", func(c *Config) { c.SearchDebounce = 0 }, "search_debounce"},
		{"negative concurrency", func(c *Config) { c.LinkCheck.Concurrency = -1 }, "link_check.concurrency"},
		{"zero timeout", func(c *Config) { c.LinkCheck.Timeout = 0 }, "link_check.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoad_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bmtree", "config.yaml")

	cfg, used, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, used, path)
	assert.DeepEqual(t, cfg, Defaults())

	_, err = os.Stat(path)
	assert.NilError(t, err, "default config should be written")
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `default_color: "#ABCDEF"
search_debounce: 50ms
link_check:
  concurrency: 3
  timeout: 2s
  exclude_domains:
    - intranet.local
`
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, _, err := Load(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.DefaultColor, "#abcdef")
	assert.Equal(t, cfg.SearchDebounce, 50*time.Millisecond)
	assert.Equal(t, cfg.LinkCheck.Concurrency, 3)
	assert.Equal(t, cfg.LinkCheck.Timeout, 2*time.Second)
	assert.DeepEqual(t, cfg.LinkCheck.ExcludeDomains, []string{"intranet.local"})
	assert.Equal(t, cfg.LogPath, Defaults().LogPath, "unset keys keep their defaults")
}

func TestLoad_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("default_color: nope\n"), 0o600))

	_, _, err := Load(path)
	assert.ErrorContains(t, err, "default_color")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("BMTREE_LINK_CHECK_CONCURRENCY", "7")

	cfg, _, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.LinkCheck.Concurrency, 7)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := Defaults()
	want.DefaultColor = "#102030"
	want.SearchDebounce = 350 * time.Millisecond

	assert.NilError(t, Save(path, want))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "search_debounce: 350ms"))

	got, _, err := Load(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, want)
}
