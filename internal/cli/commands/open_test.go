package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dataview-labs/duckview/internal/frontend"
	"github.com/dataview-labs/duckview/internal/script"
	"github.com/dataview-labs/duckview/internal/source"
)

func TestResolveAndBuildUsesResolvedChoice(t *testing.T) {
	// Harlequin requested but not installed: the session downgrades to the
	// duckdb shell, so the script must carry the shell's dot commands.
	selector := frontend.NewSelector(frontend.SelectorConfig{
		Locator: fakeLocator{},
	})

	s, resolved := resolveAndBuild(selector, frontend.Harlequin, script.Params{
		Source: source.Classify("/data/events.csv"),
		Format: script.CSV,
	})

	assert.Equal(t, frontend.DuckDB, resolved)
	assert.Contains(t, s.Statements(), ".mode box")
	assert.Contains(t, s.Statements(), ".echo on")
}

func TestResolveAndBuildHarlequinAvailable(t *testing.T) {
	selector := frontend.NewSelector(frontend.SelectorConfig{
		Locator: fakeLocator{installed: map[string]bool{"harlequin": true}},
	})

	s, resolved := resolveAndBuild(selector, frontend.Harlequin, script.Params{
		Source: source.Classify("/data/events.csv"),
		Format: script.CSV,
	})

	assert.Equal(t, frontend.Harlequin, resolved)
	assert.NotContains(t, s.Statements(), ".mode box")
	assert.NotContains(t, s.Statements(), ".echo on")
}
