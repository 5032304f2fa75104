package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/QuantaSQL/internal/log"
	"github.com/dshills/QuantaSQL/internal/sql/dialect"
	"github.com/dshills/QuantaSQL/internal/sql/format"
)

// Config represents the complete formatter configuration.
type Config struct {
	// Dialect names the grammar used to parse input.
	Dialect string `json:"dialect" yaml:"dialect"`

	// Output layout
	Format FormatConfig `json:"format" yaml:"format"`

	// Logging configuration
	Log log.Config `json:"log" yaml:"log"`

	// Input limits
	Input InputConfig `json:"input" yaml:"input"`

	// Server-side verification of regenerated SQL
	Verify VerifyConfig `json:"verify" yaml:"verify"`
}

// FormatConfig represents printer configuration.
type FormatConfig struct {
	Indent string `json:"indent" yaml:"indent"`
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// InputConfig represents input configuration.
type InputConfig struct {
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes"` // 0 means unlimited
}

// VerifyConfig represents verification configuration. An empty DSN
// disables verification.
type VerifyConfig struct {
	DSN     string `json:"dsn" yaml:"dsn"`
	Timeout string `json:"timeout" yaml:"timeout"` // duration string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dialect: dialect.Default,
		Format: FormatConfig{
			Indent: "\t",
			Pretty: true,
		},
		Log: log.DefaultConfig(),
		Input: InputConfig{
			MaxBytes: 64 * 1024 * 1024, // 64MB
		},
		Verify: VerifyConfig{
			Timeout: "10s",
		},
	}
}

// LoadFromFile loads configuration from a JSON file, or a YAML file when
// the extension is .yaml or .yml.
func LoadFromFile(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFlags merges command-line flags into the configuration. Empty
// values leave the configuration unchanged.
func (c *Config) LoadFromFlags(dialectName, indent string, compact bool, logLevel, verifyDSN string) {
	if dialectName != "" {
		c.Dialect = dialectName
	}
	if indent != "" {
		c.Format.Indent = indent
	}
	if compact {
		c.Format.Pretty = false
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if verifyDSN != "" {
		c.Verify.DSN = verifyDSN
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return err
	}

	if c.Format.Indent == "" {
		return fmt.Errorf("indent must not be empty")
	}
	if strings.TrimLeft(c.Format.Indent, " \t") != "" {
		return fmt.Errorf("indent must contain only spaces and tabs: %q", c.Format.Indent)
	}

	if err := c.Log.Validate(); err != nil {
		return err
	}

	if c.Input.MaxBytes < 0 {
		return fmt.Errorf("max input bytes cannot be negative")
	}

	if err := c.validateVerify(); err != nil {
		return fmt.Errorf("invalid verify configuration: %w", err)
	}

	return nil
}

func (c *Config) validateVerify() error {
	if c.Verify.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(c.Verify.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// FormatOptions converts to printer options for the configured dialect.
func (c *Config) FormatOptions() (format.Options, error) {
	d, err := dialect.Lookup(c.Dialect)
	if err != nil {
		return format.Options{}, err
	}
	return d.FormatOptions(format.Options{
		Indent: c.Format.Indent,
		Pretty: c.Format.Pretty,
	}), nil
}

// VerifyEnabled returns true if a verification server is configured.
func (c *Config) VerifyEnabled() bool {
	return c.Verify.DSN != ""
}

// VerifyTimeout returns the verification timeout, or zero when unset.
func (c *Config) VerifyTimeout() time.Duration {
	d, err := time.ParseDuration(c.Verify.Timeout)
	if err != nil {
		return 0
	}
	return d
}
