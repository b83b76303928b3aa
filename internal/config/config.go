// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and environment on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/scout/internal/domain/aggregate"
)

// Output formats accepted by the list and summary commands.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// DBPath is the observation database file.
	DBPath string `koanf:"db_path"`

	// Addr configures the local HTTP view listen address.
	Addr string `koanf:"addr"`

	// SortBy orders the summary view by a column; empty keeps store order.
	SortBy string `koanf:"sort_by"`

	// SortDesc reverses SortBy.
	SortDesc bool `koanf:"sort_desc"`

	// Format selects the CLI output format: table, json or csv.
	Format string `koanf:"format"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		DBPath:    "scout.db",
		Addr:      "127.0.0.1:9080",
		Format:    FormatTable,
	}
}

// Validate checks cross-field rules and returns an ErrInvalidConfig wrap.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DBPath) == "":
		return fmt.Errorf("%w: db_path must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Format {
	case FormatTable, FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("%w: format %q must be table, json or csv", ErrInvalidConfig, c.Format)
	}
	if c.SortBy != "" {
		if _, err := aggregate.SortSummaries(nil, c.SortBy, false); err != nil {
			return fmt.Errorf("%w: sort_by: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
