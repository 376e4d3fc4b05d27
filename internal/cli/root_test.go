package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "duckview", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, flag := range []string{"config", "table", "duckdb-bin", "harlequin-bin", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "persistent flag %q should exist", flag)
	}

	subcommands := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, name := range []string{"open", "script", "peek", "doctor", "version", "completion"} {
		assert.True(t, subcommands[name], "subcommand %q should be registered", name)
	}
}
