// Package config loads the retailgrid configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/retailgrid/internal/source"
)

// Config holds invocation-independent settings. Flags override file
// values; file values override defaults.
type Config struct {
	// Source configures where the workbook comes from.
	Source SourceConfig `yaml:"source"`

	// Cache configures the local snapshot cache.
	Cache CacheConfig `yaml:"cache"`
}

// SourceConfig configures the dataset source.
type SourceConfig struct {
	// URL is the workbook location.
	URL string `yaml:"url"`

	// Refresh is how long a snapshot stays fresh (Go duration string).
	Refresh Duration `yaml:"refresh"`
}

// Duration decodes Go duration strings ("24h", "90m") from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// CacheConfig configures local persistence.
type CacheConfig struct {
	// Dir holds the snapshot database and the raw workbook copy.
	Dir string `yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source: SourceConfig{
			URL:     source.DefaultURL,
			Refresh: Duration(source.DefaultRefresh),
		},
		Cache: CacheConfig{
			Dir: defaultCacheDir(),
		},
	}
}

// Load reads a config file over the defaults. An empty path returns the
// defaults; a missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Source.URL == "" {
		cfg.Source.URL = source.DefaultURL
	}
	if cfg.Source.Refresh <= 0 {
		cfg.Source.Refresh = Duration(source.DefaultRefresh)
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultCacheDir()
	}
	return cfg, nil
}

// DatabasePath returns the snapshot database location under the cache dir.
func (c Config) DatabasePath() string {
	return filepath.Join(c.Cache.Dir, "snapshots.db")
}

func defaultCacheDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "retailgrid")
	}
	return ".retailgrid"
}
