package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Provider struct {
	BaseURL   string `json:"base_url" yaml:"base_url"`
	UserAgent string `json:"user_agent" yaml:"user_agent"`
	Interval  string `json:"interval" yaml:"interval"`
	// Serialize routes every lookup through one goroutine. Only needed for
	// providers that are not safe for concurrent use.
	Serialize bool `json:"serialize" yaml:"serialize"`
}

type Fetch struct {
	// MaxConcurrency caps in-flight lookups; 0 means one goroutine per symbol.
	MaxConcurrency    int `json:"max_concurrency" yaml:"max_concurrency"`
	RequestTimeoutSec int `json:"request_timeout_sec" yaml:"request_timeout_sec"`
}

type Output struct {
	Path string `json:"path" yaml:"path"`
}

type Log struct {
	Level string `json:"level" yaml:"level"`
}

type Config struct {
	Provider Provider `json:"provider" yaml:"provider"`
	Fetch    Fetch    `json:"fetch" yaml:"fetch"`
	Output   Output   `json:"output" yaml:"output"`
	Log      Log      `json:"log" yaml:"log"`
}

func Default() Config {
	return Config{
		Provider: Provider{
			BaseURL:  "https://query1.finance.yahoo.com",
			Interval: "1d",
		},
		Fetch: Fetch{RequestTimeoutSec: 15},
		Log:   Log{Level: "info"},
	}
}

// Load reads a JSON or YAML config from path. If path is empty, config.json
// in the working directory is used when present; a missing file yields
// defaults. Environment variables override file values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := decode(path, b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	default:
		return json.Unmarshal(b, cfg)
	}
}

// Validate checks that the values can drive a run.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Provider.BaseURL) == "" {
		return errors.New("provider.base_url is required")
	}
	if strings.TrimSpace(c.Provider.Interval) == "" {
		return errors.New("provider.interval is required")
	}
	if c.Fetch.MaxConcurrency < 0 {
		return fmt.Errorf("fetch.max_concurrency must be >= 0, got %d", c.Fetch.MaxConcurrency)
	}
	if c.Fetch.RequestTimeoutSec < 1 {
		return fmt.Errorf("fetch.request_timeout_sec must be >= 1, got %d", c.Fetch.RequestTimeoutSec)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("YAHOO_USER_AGENT"); v != "" {
		cfg.Provider.UserAgent = v
	}
	if v := os.Getenv("QUOTE_INTERVAL"); v != "" {
		cfg.Provider.Interval = v
	}
	if v := os.Getenv("SERIALIZE_LOOKUPS"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y":
			cfg.Provider.Serialize = true
		case "0", "false", "no", "n":
			cfg.Provider.Serialize = false
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		if x, err := strconv.Atoi(v); err == nil && x > 0 {
			cfg.Fetch.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("MAX_CONCURRENCY"); v != "" {
		if x, err := strconv.Atoi(v); err == nil && x >= 0 {
			cfg.Fetch.MaxConcurrency = x
		}
	}
	if v := os.Getenv("OUTPUT_FILE"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
