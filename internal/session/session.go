// Package session launches an interactive front end bound to an init script.
//
// Exactly one front end process runs per session. It is attached to the
// caller's terminal and awaited to completion; the init script lives in a
// temporary file that is removed on every path out of Run, including
// subprocess failure and missing executables.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"

	"github.com/dataview-labs/duckview/internal/frontend"
	"github.com/dataview-labs/duckview/internal/script"
)

// State classifies how a session ended.
type State int

const (
	// Success means the front end exited cleanly.
	Success State = iota
	// ProcessFailed means the front end exited non-zero.
	ProcessFailed
	// ExecutableNotFound means the front end binary is not on the search path.
	ExecutableNotFound
	// UnexpectedError covers everything else.
	UnexpectedError
)

// Outcome describes how the front end process ended.
type Outcome struct {
	State    State
	ExitCode int   // set when State is ProcessFailed
	Err      error // set for ExecutableNotFound and UnexpectedError
}

// Launcher starts a front end process in the foreground and blocks until it
// exits. A non-zero exit from the process is reported through the exit code,
// not the error. Tests substitute fakes; the production implementation is
// TerminalLauncher.
type Launcher interface {
	Launch(ctx context.Context, argv []string) (exitCode int, err error)
}

// TerminalLauncher runs the front end with the caller's stdin, stdout and
// stderr so the user can type queries directly.
type TerminalLauncher struct{}

// Launch runs argv and waits for it to terminate.
func (TerminalLauncher) Launch(ctx context.Context, argv []string) (int, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, err
	}
	return 0, nil
}

// Runner owns the lifecycle of one interactive session.
type Runner struct {
	selector *frontend.Selector
	launcher Launcher
	logger   *slog.Logger
}

// NewRunner creates a Runner. A nil launcher means the real terminal
// launcher; a nil logger discards.
func NewRunner(selector *frontend.Selector, launcher Launcher, logger *slog.Logger) *Runner {
	if launcher == nil {
		launcher = TerminalLauncher{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{selector: selector, launcher: launcher, logger: logger}
}

// Run writes the script to a temporary file, launches the front end against
// it, waits, and removes the file. Failures never escape as errors or
// panics; everything is folded into the Outcome so the caller always reaches
// its own logging tail.
func (r *Runner) Run(ctx context.Context, s script.Script, choice frontend.Choice) Outcome {
	f, err := os.CreateTemp("", "duckview-*.sql")
	if err != nil {
		return Outcome{State: UnexpectedError, Err: fmt.Errorf("create init script: %w", err)}
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			// Cleanup failure never masks the session outcome.
			r.logger.Warn("could not delete init script", "path", path, "error", err)
		}
	}()

	if _, err := f.WriteString(s.String()); err != nil {
		_ = f.Close()
		return Outcome{State: UnexpectedError, Err: fmt.Errorf("write init script: %w", err)}
	}
	if err := f.Close(); err != nil {
		return Outcome{State: UnexpectedError, Err: fmt.Errorf("close init script: %w", err)}
	}

	argv := r.selector.InitArgs(choice, path)
	r.logger.Info("starting interactive session", "frontend", choice.String(), "init_script", path)

	// A terminal Ctrl-C is delivered to the whole foreground process group.
	// The interrupt belongs to the front end while it runs; duckview must
	// survive it so cleanup still happens after the front end terminates.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	code, err := r.launcher.Launch(ctx, argv)
	switch {
	case err == nil && code == 0:
		return Outcome{State: Success}
	case err == nil:
		r.logger.Error("front end exited with a failure", "binary", argv[0], "exit_code", code)
		return Outcome{State: ProcessFailed, ExitCode: code}
	case isNotFound(err):
		r.logger.Error("executable not found, install it and make sure it is on your PATH",
			"binary", argv[0])
		return Outcome{State: ExecutableNotFound, Err: fmt.Errorf("%s not found: %w", argv[0], err)}
	default:
		r.logger.Error("session failed unexpectedly", "error", err)
		return Outcome{State: UnexpectedError, Err: err}
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
