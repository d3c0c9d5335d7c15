// Package config loads the generator configuration from an optional YAML
// file plus environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level generator configuration.
type Config struct {
	// FeedsDir is where feed XML, caches, and the archive live.
	FeedsDir string        `yaml:"feeds_dir"`
	Archive  ArchiveConfig `yaml:"archive"`
	Log      LogConfig     `yaml:"log"`
	// Sources holds optional per-source overrides keyed by source name.
	Sources map[string]SourceConfig `yaml:"sources"`
}

// ArchiveConfig controls the SQLite run archive.
type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // empty means stderr only
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// SourceConfig holds per-source overrides.
type SourceConfig struct {
	// Enabled defaults to true when unset.
	Enabled *bool `yaml:"enabled"`
	// FeedName overrides the output file name: feed_<FeedName>.xml.
	FeedName string `yaml:"feed_name"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		FeedsDir: "feeds",
		Archive: ArchiveConfig{
			Enabled: true,
			Path:    "feeds/archive.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path. A missing file is not an error and
// yields the defaults; a present-but-malformed file is an error.
// RSS_FEEDS_DIR and RSS_FEEDS_ARCHIVE environment variables override the
// corresponding file values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if dir := os.Getenv("RSS_FEEDS_DIR"); dir != "" {
		cfg.FeedsDir = dir
	}
	if path := os.Getenv("RSS_FEEDS_ARCHIVE"); path != "" {
		cfg.Archive.Path = path
	}
}

// SourceEnabled reports whether the named source should run.
func (c Config) SourceEnabled(name string) bool {
	sc, ok := c.Sources[name]
	if !ok || sc.Enabled == nil {
		return true
	}
	return *sc.Enabled
}

// FeedName returns the feed name for a source, honoring any override.
func (c Config) FeedName(name string) string {
	if sc, ok := c.Sources[name]; ok && sc.FeedName != "" {
		return sc.FeedName
	}
	return name
}
