// Package commands implements the duckview CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataview-labs/duckview/internal/cli/config"
	"github.com/dataview-labs/duckview/internal/cli/output"
)

// ExitError carries a specific process exit code out of a command, letting
// the session surface the front end's own exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables with defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Table:        getEnvOrDefault("DUCKVIEW_TABLE", config.DefaultTable),
		UI:           getEnvOrDefault("DUCKVIEW_UI", config.DefaultUI),
		Type:         getEnvOrDefault("DUCKVIEW_TYPE", config.DefaultType),
		Profile:      os.Getenv("DUCKVIEW_PROFILE"),
		DuckDBBin:    getEnvOrDefault("DUCKVIEW_DUCKDB_BIN", config.DefaultDuckDBBin),
		HarlequinBin: getEnvOrDefault("DUCKVIEW_HARLEQUIN_BIN", config.DefaultHarlequinBin),
		OutputFormat: getEnvOrDefault("DUCKVIEW_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("DUCKVIEW_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// newRenderer builds a renderer for a command from the current config.
func newRenderer(cmd *cobra.Command) *output.Renderer {
	cfg := getConfig()
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
}

// valueOr returns v unless it is empty, in which case it returns fallback.
// Used to layer per-command flags over config values.
func valueOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
