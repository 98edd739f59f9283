package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rakadenta/dompet"
)

// Config holds everything the CLI needs to reach the backend.
type Config struct {
	BaseURL            string
	TokenPath          string
	Timeout            time.Duration
	LogLevel           string
	RevalidateInterval time.Duration
	WatchToken         bool
}

// fileConfig is the YAML shape of the config file; durations are strings so
// the file stays human-editable ("30s", "2m").
type fileConfig struct {
	BaseURL            string `yaml:"base_url"`
	TokenPath          string `yaml:"token_path"`
	Timeout            string `yaml:"timeout"`
	LogLevel           string `yaml:"log_level"`
	RevalidateInterval string `yaml:"revalidate_interval"`
	WatchToken         *bool  `yaml:"watch_token"`
}

// DefaultConfigPath resolves the conventional config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "unable to resolve user config dir")
	}
	return filepath.Join(dir, "dompet", "config.yaml"), nil
}

// LoadConfig builds the effective configuration from defaults, the YAML
// config file when present, and environment overrides, in that order. A
// .env file in the working directory is loaded first, best effort.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:            "http://localhost:8080",
		Timeout:            30 * time.Second,
		LogLevel:           "info",
		RevalidateInterval: time.Minute,
		WatchToken:         true,
	}
	if tokenPath, err := dompet.DefaultTokenPath(); err == nil {
		cfg.TokenPath = tokenPath
	}

	if path == "" {
		if p, err := DefaultConfigPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.TokenPath == "" {
		return nil, errors.New("no usable token path", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to read config file")
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "unable to parse config file")
	}

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.TokenPath != "" {
		cfg.TokenPath = fc.TokenPath
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.WatchToken != nil {
		cfg.WatchToken = *fc.WatchToken
	}
	if err := applyDuration(&cfg.Timeout, fc.Timeout, "timeout"); err != nil {
		return err
	}
	return applyDuration(&cfg.RevalidateInterval, fc.RevalidateInterval, "revalidate_interval")
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DOMPET_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("DOMPET_TOKEN_PATH"); v != "" {
		cfg.TokenPath = v
	}
	if v := os.Getenv("DOMPET_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DOMPET_WATCH_TOKEN"); v != "" {
		cfg.WatchToken = v == "1" || v == "true"
	}
	if err := applyDuration(&cfg.Timeout, os.Getenv("DOMPET_TIMEOUT"), "DOMPET_TIMEOUT"); err != nil {
		return err
	}
	return applyDuration(&cfg.RevalidateInterval, os.Getenv("DOMPET_REVALIDATE_INTERVAL"), "DOMPET_REVALIDATE_INTERVAL")
}

func applyDuration(dst *time.Duration, value, name string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid duration for "+name)
	}
	*dst = d
	return nil
}
