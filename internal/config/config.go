// Package config loads casa-score settings from an optional YAML file, a
// .env file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/Fichusgg/casa-score-br/core/fetch"
	"github.com/Fichusgg/casa-score-br/internal/logger"
)

// DefaultPath is read when no explicit config file is given. It may be absent.
const DefaultPath = "configs/app.yaml"

const (
	defaultAppName     = "casa-score"
	defaultPort        = 8080
	defaultConcurrency = 4
)

// Config is the full application configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Log     logger.Config `yaml:"log"`
	Fetch   fetch.Config  `yaml:"fetch"`
	Extract ExtractConfig `yaml:"extract"`
	Batch   BatchConfig   `yaml:"batch"`
}

// AppConfig identifies the running instance and its HTTP port.
type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
	Port int    `yaml:"port"`
}

// ExtractConfig tunes the listing extractors.
type ExtractConfig struct {
	// DefaultEstado is the two-letter state put on every address.
	DefaultEstado string `yaml:"default_estado"`
}

// BatchConfig bounds --file ingestion.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// Load reads path (or DefaultPath when empty), then .env, then the
// CASASCORE_* environment overrides. An explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	out := cfg.WithDefaults()
	return &out, nil
}

// WithDefaults returns a copy of the config with default values applied for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.App.Name == "" {
		c.App.Name = defaultAppName
	}
	if c.App.Port <= 0 {
		c.App.Port = defaultPort
	}
	if c.Batch.Concurrency <= 0 {
		c.Batch.Concurrency = defaultConcurrency
	}
	c.Fetch = c.Fetch.WithDefaults()
	return c
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CASASCORE_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CASASCORE_PORT: %w", err)
		}
		c.App.Port = n
	}
	if v := os.Getenv("CASASCORE_ENV"); v != "" {
		c.App.Env = v
	}
	if v := os.Getenv("CASASCORE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CASASCORE_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CASASCORE_FETCH_TIMEOUT: %w", err)
		}
		c.Fetch.Timeout = d
	}
	if v := os.Getenv("CASASCORE_USER_AGENT"); v != "" {
		c.Fetch.UserAgent = v
	}
	if v := os.Getenv("CASASCORE_DEFAULT_ESTADO"); v != "" {
		c.Extract.DefaultEstado = v
	}
	if v := os.Getenv("CASASCORE_BATCH_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CASASCORE_BATCH_CONCURRENCY: %w", err)
		}
		c.Batch.Concurrency = n
	}
	return nil
}
