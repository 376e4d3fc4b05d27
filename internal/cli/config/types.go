// Package config provides configuration management for the duckview CLI.
//
// Configuration is layered: built-in defaults, then a duckview.yaml config
// file, then DUCKVIEW_* environment variables, then command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Table is the name of the table datasets are materialized into.
	Table string `koanf:"table"`
	// UI is the default front end: duckdb or harlequin.
	UI string `koanf:"ui"`
	// Type is the default file type: csv or parquet.
	Type string `koanf:"type"`
	// Profile is the default AWS profile for S3 references.
	Profile string `koanf:"profile"`
	// DuckDBBin and HarlequinBin override the executable names probed on PATH.
	DuckDBBin    string `koanf:"duckdb_bin"`
	HarlequinBin string `koanf:"harlequin_bin"`

	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultTable        = "data"
	DefaultUI           = "duckdb"
	DefaultType         = "csv"
	DefaultDuckDBBin    = "duckdb"
	DefaultHarlequinBin = "harlequin"
	DefaultOutput       = "auto" // Auto-detect: TTY=styled text, non-TTY=plain
)
