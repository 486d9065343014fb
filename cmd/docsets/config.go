package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	dshttp "github.com/fwojciec/docsets/http"
	"github.com/fwojciec/docsets/index"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file.
type Config struct {
	DataDir          string        `yaml:"data_dir"`
	CatalogURL       string        `yaml:"catalog_url"`
	FeedURL          string        `yaml:"feed_url"`
	Timeout          time.Duration `yaml:"timeout"`
	IndexConcurrency int           `yaml:"index_concurrency"`
	LogLevel         string        `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		DataDir:          defaultDataDir(),
		CatalogURL:       dshttp.DefaultCatalogURL,
		FeedURL:          dshttp.DefaultFeedURL,
		Timeout:          dshttp.DefaultCatalogTimeout,
		IndexConcurrency: index.DefaultConcurrency,
		LogLevel:         "warn",
	}
}

// LoadConfig reads the file at path over the defaults. A missing file is
// only an error when required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("unable to open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("unable to parse config file: %w", err)
	}
	return cfg, nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docsets"
	}
	return filepath.Join(home, ".docsets")
}

func defaultConfigPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}
