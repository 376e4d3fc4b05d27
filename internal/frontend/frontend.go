// Package frontend resolves which interactive SQL front end a session uses.
//
// Two front ends are supported: the native duckdb shell and the Harlequin
// TUI. The duckdb shell is assumed to always be present since the whole tool
// exists to launch it; Harlequin is probed on the search path and a session
// falls back to the duckdb shell when it is missing.
package frontend

import (
	"fmt"
	"log/slog"
	"os/exec"
)

// Choice identifies an interactive front end.
type Choice int

const (
	// DuckDB is the native duckdb shell.
	DuckDB Choice = iota
	// Harlequin is the Harlequin SQL IDE (https://harlequin.sh).
	Harlequin
)

func (c Choice) String() string {
	if c == Harlequin {
		return "harlequin"
	}
	return "duckdb"
}

// ParseChoice maps a --ui flag value to a Choice.
func ParseChoice(s string) (Choice, error) {
	switch s {
	case "duckdb", "":
		return DuckDB, nil
	case "harlequin":
		return Harlequin, nil
	default:
		return DuckDB, fmt.Errorf("unknown ui %q (supported: duckdb, harlequin)", s)
	}
}

// Locator checks whether an executable is discoverable on the search path.
// The production implementation wraps exec.LookPath; tests substitute fakes.
type Locator interface {
	Exists(name string) bool
}

// PathLocator locates executables with exec.LookPath.
type PathLocator struct{}

// Exists reports whether name resolves to an executable on PATH.
func (PathLocator) Exists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Selector resolves a requested front end against what is installed.
type Selector struct {
	locator      Locator
	logger       *slog.Logger
	duckdbBin    string
	harlequinBin string
}

// SelectorConfig configures a Selector. Zero values fall back to the
// standard binary names, a PATH-based locator, and a discard logger.
type SelectorConfig struct {
	DuckDBBin    string
	HarlequinBin string
	Locator      Locator
	Logger       *slog.Logger
}

// NewSelector creates a Selector.
func NewSelector(cfg SelectorConfig) *Selector {
	if cfg.DuckDBBin == "" {
		cfg.DuckDBBin = "duckdb"
	}
	if cfg.HarlequinBin == "" {
		cfg.HarlequinBin = "harlequin"
	}
	if cfg.Locator == nil {
		cfg.Locator = PathLocator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Selector{
		locator:      cfg.Locator,
		logger:       cfg.Logger,
		duckdbBin:    cfg.DuckDBBin,
		harlequinBin: cfg.HarlequinBin,
	}
}

// Resolve returns the front end to actually launch and whether the request
// was downgraded. Requesting the duckdb shell always succeeds; requesting
// Harlequin probes the search path and falls back to the duckdb shell with
// a warning when the binary is missing. This is the only graceful
// degradation in the tool.
func (s *Selector) Resolve(requested Choice) (Choice, bool) {
	if requested != Harlequin {
		return DuckDB, false
	}
	if s.locator.Exists(s.harlequinBin) {
		return Harlequin, false
	}
	s.logger.Warn("harlequin not found on PATH, falling back to the duckdb shell",
		"binary", s.harlequinBin)
	return DuckDB, true
}

// Binary returns the executable name for a front end.
func (s *Selector) Binary(c Choice) string {
	if c == Harlequin {
		return s.harlequinBin
	}
	return s.duckdbBin
}

// InitArgs returns the argv that starts a front end with an init script.
// Both front ends accept a script file at startup, but the flag differs:
// `duckdb -init file.sql` versus `harlequin --init-path file.sql`.
func (s *Selector) InitArgs(c Choice, scriptPath string) []string {
	if c == Harlequin {
		return []string{s.harlequinBin, "--init-path", scriptPath}
	}
	return []string{s.duckdbBin, "-init", scriptPath}
}
