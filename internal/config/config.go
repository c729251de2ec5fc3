// Package config loads the analyzer configuration: the database path, the
// per-table field-size schema used by the fallback estimator, the per-type
// byte widths, and the storage-risk candidate callouts.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full analyzer configuration. It is loaded once at startup
// and treated as read-only for the rest of the run.
type Config struct {
	// Database is the path to the SQLite database file.
	Database string `yaml:"database"`

	// TypeSizes holds the per-type byte widths used for fixed-width field
	// groups. These are storage heuristics, not values derived from the
	// on-disk format, which is why they are configurable.
	TypeSizes TypeSizes `yaml:"type_sizes"`

	// Tables maps table names to their declared field-size schemas.
	// Tables without an entry are reported by row count only.
	Tables map[string]*TableSchema `yaml:"tables"`

	// Candidates are tables known in advance to be storage-risk suspects,
	// reported as narrative callouts at the end of every run.
	Candidates []Candidate `yaml:"candidates"`
}

// TypeSizes holds the assumed on-disk byte width of each fixed-width
// field type.
type TypeSizes struct {
	IntBytes      int64 `yaml:"int_bytes"`
	BigIntBytes   int64 `yaml:"bigint_bytes"`
	FloatBytes    int64 `yaml:"float_bytes"`
	BooleanBytes  int64 `yaml:"boolean_bytes"`
	DatetimeBytes int64 `yaml:"datetime_bytes"`
}

// TableSchema declares the typed field groups of one table. Field names
// are validated against live column metadata at estimation time, so a
// declared field that no longer exists is skipped with a warning rather
// than failing the run.
type TableSchema struct {
	StringFields   []string `yaml:"string_fields"`
	FloatFields    []string `yaml:"float_fields"`
	IntFields      []string `yaml:"int_fields"`
	BigIntFields   []string `yaml:"bigint_fields"`
	BooleanFields  []string `yaml:"boolean_fields"`
	DatetimeFields []string `yaml:"datetime_fields"`
	JSONFields     []string `yaml:"json_fields"`

	// FixedFieldsEstimateBytes is a flat per-row byte constant covering
	// columns not worth enumerating individually.
	FixedFieldsEstimateBytes int64 `yaml:"fixed_fields_estimate_bytes"`
}

// Candidate is one hand-curated storage-risk callout.
type Candidate struct {
	Table  string `yaml:"table"`
	Reason string `yaml:"reason"`
}

// Default returns the built-in configuration. The table schemas mirror the
// deployment this tool was written for: a transaction cache whose JSON
// payload column dominates storage, and a high-row-count swap analysis
// table of strings and floats.
func Default() *Config {
	cfg := &Config{
		Database: "dev.db",
		Tables: map[string]*TableSchema{
			"HeliusTransactionCache": {
				JSONFields: []string{"rawData"},
				// signature, timestamp, fetchedAt are minor next to rawData.
				FixedFieldsEstimateBytes: 0,
			},
			"SwapAnalysisInput": {
				StringFields: []string{"walletAddress", "signature", "mint", "direction", "interactionType"},
				// id (8) + timestamp (4) + five floats (8 each).
				FixedFieldsEstimateBytes: 8 + 4 + 8*5,
			},
		},
		Candidates: []Candidate{
			{
				Table:  "HeliusTransactionCache",
				Reason: "rawData JSON payload column is the primary suspect for high storage",
			},
			{
				Table:  "SwapAnalysisInput",
				Reason: "high row counts combined with multiple string and float fields",
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration from path. An empty path returns the
// built-in defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database == "" {
		c.Database = "dev.db"
	}
	if c.TypeSizes.IntBytes == 0 {
		c.TypeSizes.IntBytes = 4
	}
	if c.TypeSizes.BigIntBytes == 0 {
		c.TypeSizes.BigIntBytes = 8
	}
	if c.TypeSizes.FloatBytes == 0 {
		c.TypeSizes.FloatBytes = 8 // IEEE double
	}
	if c.TypeSizes.BooleanBytes == 0 {
		c.TypeSizes.BooleanBytes = 1
	}
	if c.TypeSizes.DatetimeBytes == 0 {
		c.TypeSizes.DatetimeBytes = 8 // 64-bit timestamp
	}
}

func (c *Config) validate() error {
	ts := c.TypeSizes
	for name, v := range map[string]int64{
		"int_bytes":      ts.IntBytes,
		"bigint_bytes":   ts.BigIntBytes,
		"float_bytes":    ts.FloatBytes,
		"boolean_bytes":  ts.BooleanBytes,
		"datetime_bytes": ts.DatetimeBytes,
	} {
		if v <= 0 {
			return fmt.Errorf("type_sizes.%s must be positive, got %d", name, v)
		}
	}

	for table, schema := range c.Tables {
		if table == "" {
			return fmt.Errorf("tables contains an entry with an empty name")
		}
		if schema == nil {
			return fmt.Errorf("table %q has no schema body", table)
		}
		if schema.FixedFieldsEstimateBytes < 0 {
			return fmt.Errorf("table %q: fixed_fields_estimate_bytes must not be negative", table)
		}
		for _, group := range [][]string{
			schema.StringFields, schema.FloatFields, schema.IntFields,
			schema.BigIntFields, schema.BooleanFields, schema.DatetimeFields,
			schema.JSONFields,
		} {
			for _, field := range group {
				if field == "" {
					return fmt.Errorf("table %q declares an empty field name", table)
				}
			}
		}
	}

	for i, cand := range c.Candidates {
		if cand.Table == "" {
			return fmt.Errorf("candidates[%d] has no table name", i)
		}
	}
	return nil
}
