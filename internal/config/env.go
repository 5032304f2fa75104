package config

import (
	"os"
	"strconv"
)

// Environment variables read by LoadFromEnv.
const (
	EnvDialect       = "QUANTASQL_DIALECT"
	EnvIndent        = "QUANTASQL_INDENT"
	EnvPretty        = "QUANTASQL_PRETTY"
	EnvLogLevel      = "QUANTASQL_LOG_LEVEL"
	EnvLogFormat     = "QUANTASQL_LOG_FORMAT"
	EnvMaxInputBytes = "QUANTASQL_MAX_INPUT_BYTES"
	EnvVerifyDSN     = "QUANTASQL_VERIFY_DSN"
	EnvVerifyTimeout = "QUANTASQL_VERIFY_TIMEOUT"
)

// LoadFromEnv merges environment variables into the configuration.
// Malformed numeric and boolean values are ignored.
func (c *Config) LoadFromEnv() {
	if val := os.Getenv(EnvDialect); val != "" {
		c.Dialect = val
	}

	if val := os.Getenv(EnvIndent); val != "" {
		c.Format.Indent = val
	}

	if val := os.Getenv(EnvPretty); val != "" {
		if pretty, err := strconv.ParseBool(val); err == nil {
			c.Format.Pretty = pretty
		}
	}

	if val := os.Getenv(EnvLogLevel); val != "" {
		c.Log.Level = val
	}

	if val := os.Getenv(EnvLogFormat); val != "" {
		c.Log.Format = val
	}

	if val := os.Getenv(EnvMaxInputBytes); val != "" {
		if limit, err := strconv.ParseInt(val, 10, 64); err == nil && limit >= 0 {
			c.Input.MaxBytes = limit
		}
	}

	if val := os.Getenv(EnvVerifyDSN); val != "" {
		c.Verify.DSN = val
	}

	if val := os.Getenv(EnvVerifyTimeout); val != "" {
		c.Verify.Timeout = val
	}
}
