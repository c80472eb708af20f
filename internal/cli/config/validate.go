package config

import (
	"fmt"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.FlushPause < 0 {
		return fmt.Errorf("flush_pause must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	switch c.OutputFormat {
	case "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("unknown output format %q (want auto, text, markdown, or json)", c.OutputFormat)
	}

	switch strings.ToLower(c.Store.Driver) {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("unsupported store driver %q (want sqlite or pgx)", c.Store.Driver)
	}

	return nil
}
