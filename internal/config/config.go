// Package config loads the jot configuration: defaults, then an optional
// jot.yaml in the data directory, then JOT_* environment variables.
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

// FileName is the configuration file looked up in the data directory.
const FileName = "jot.yaml"

// Config holds the application configuration.
type Config struct {
	Adapter    string `yaml:"adapter" json:"adapter" validate:"required,oneof=fs memory badger"`
	DataDir    string `yaml:"data_dir" json:"data_dir" validate:"required"`
	StorageKey string `yaml:"storage_key" json:"storage_key" validate:"required,excludesall=/\\"`
	LogLevel   string `yaml:"log_level" json:"log_level" validate:"required,oneof=debug info warn error"`
	ReadOnly   bool   `yaml:"read_only" json:"read_only"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Adapter:    "fs",
		DataDir:    ".",
		StorageKey: core.DefaultStorageKey,
		LogLevel:   "info",
	}
}

// Load builds the configuration for dataDir. A missing jot.yaml is not an error;
// a malformed one is.
func Load(dataDir string) (Config, error) {
	cfg := Default()
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	if err := cfg.mergeFile(filepath.Join(cfg.DataDir, FileName)); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if file.Adapter != "" {
		c.Adapter = file.Adapter
	}
	if file.DataDir != "" {
		c.DataDir = file.DataDir
	}
	if file.StorageKey != "" {
		c.StorageKey = file.StorageKey
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	c.ReadOnly = c.ReadOnly || file.ReadOnly
	return nil
}

func (c *Config) applyEnv() {
	c.Adapter = getEnv("JOT_ADAPTER", c.Adapter)
	c.DataDir = getEnv("JOT_DATA_DIR", c.DataDir)
	c.StorageKey = getEnv("JOT_STORAGE_KEY", c.StorageKey)
	c.LogLevel = strings.ToLower(getEnv("JOT_LOG_LEVEL", c.LogLevel))
	c.ReadOnly = getBoolEnv("JOT_READ_ONLY", c.ReadOnly)
}

var validate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getEnv returns the environment value or the default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv returns the environment value parsed as bool, or the default.
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
