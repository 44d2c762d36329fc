// ABOUTME: Configuration loading and parsing for the node
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// DBName is the database file name inside the storage directory.
const DBName = "rln_db"

// Config represents the complete node configuration.
type Config struct {
	StorageDir string         `yaml:"storage_dir"`
	Database   DatabaseConfig `yaml:"database"`
	Logging    LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig holds relational backend configuration. Pool bounds are
// configuration, not behavior: they limit concurrent in-flight operations
// without changing any store contract.
type DatabaseConfig struct {
	Path     string `yaml:"path"`
	MaxConns int    `yaml:"max_conns"`

	BusyTimeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	BusyTimeoutRaw string `yaml:"busy_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		StorageDir: "data",
		Logging:    LoggingConfig{Level: "info"},
	}
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.parseDurations(); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables become empty strings.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (c *Config) applyDefaults() {
	if c.StorageDir == "" {
		c.StorageDir = "data"
	}
	if c.Database.Path == "" {
		c.Database.Path = filepath.Join(c.StorageDir, DBName)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.StorageDir == "" {
		return fmt.Errorf("storage_dir is required")
	}
	if c.Database.MaxConns < 0 {
		return fmt.Errorf("database.max_conns must not be negative")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values.
func (c *Config) parseDurations() error {
	if c.Database.BusyTimeoutRaw != "" {
		d, err := time.ParseDuration(c.Database.BusyTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing busy_timeout %q: %w", c.Database.BusyTimeoutRaw, err)
		}
		c.Database.BusyTimeout = d
	}
	return nil
}
