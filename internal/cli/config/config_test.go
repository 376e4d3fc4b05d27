package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultTable, cfg.Table)
	assert.Equal(t, DefaultUI, cfg.UI)
	assert.Equal(t, DefaultType, cfg.Type)
	assert.Equal(t, DefaultDuckDBBin, cfg.DuckDBBin)
	assert.Equal(t, DefaultHarlequinBin, cfg.HarlequinBin)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Empty(t, cfg.Profile)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "duckview.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"table: events\nui: harlequin\nprofile: work\nverbose: true\n",
	), 0o600))
	chdir(t, dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "events", cfg.Table)
	assert.Equal(t, "harlequin", cfg.UI)
	assert.Equal(t, "work", cfg.Profile)
	assert.True(t, cfg.Verbose)
	// File keys not set keep their defaults
	assert.Equal(t, DefaultType, cfg.Type)
	assert.Equal(t, "duckview.yaml", GetConfigFileUsed())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "duckview.yaml"),
		[]byte("table: from_file\n"), 0o600))
	chdir(t, dir)
	t.Setenv("DUCKVIEW_TABLE", "from_env")
	t.Setenv("DUCKVIEW_HARLEQUIN_BIN", "harlequin4")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.Table)
	assert.Equal(t, "harlequin4", cfg.HarlequinBin)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())
	t.Setenv("DUCKVIEW_TABLE", "from_env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("table", "", "")
	flags.String("duckdb-bin", "", "")
	require.NoError(t, flags.Parse([]string{"--table", "from_flag", "--duckdb-bin", "duckdb-dev"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.Table)
	assert.Equal(t, "duckdb-dev", cfg.DuckDBBin, "kebab-case flag maps to snake_case key")
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("table", "flag_default", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, DefaultTable, cfg.Table, "unset flags must not override defaults")
}

func TestGetLogger(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, GetLogger(ctx))
	assert.NotNil(t, GetLogger(context.Background()), "fallback logger must never be nil")
}
