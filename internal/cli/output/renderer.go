// Package output renders command results for terminals, pipes, and scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects how command output is rendered.
type Mode string

const (
	// ModeAuto picks styled text on a terminal and plain text elsewhere.
	ModeAuto Mode = "auto"
	// ModeText is human-readable text.
	ModeText Mode = "text"
	// ModeJSON is machine-readable JSON.
	ModeJSON Mode = "json"
)

// Styles groups the lipgloss styles used by text rendering.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errw   io.Writer
	mode   Mode
	isTTY  bool
	styles Styles
}

// NewRenderer creates a Renderer writing to out and errw.
func NewRenderer(out, errw io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errw:   errw,
		mode:   mode,
		isTTY:  stdoutIsTerminal(),
		styles: defaultStyles(),
	}
}

func stdoutIsTerminal() bool {
	return termenv.NewOutput(os.Stdout).EnvColorProfile() != termenv.Ascii
}

// EffectiveMode resolves ModeAuto against the environment.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	return ModeText
}

// Styles returns the styles for text rendering. On a non-terminal they are
// replaced with no-op styles so piped output stays clean.
func (r *Renderer) Styles() Styles {
	if r.isTTY && r.mode != ModeJSON {
		return r.styles
	}
	plain := lipgloss.NewStyle()
	return Styles{Header: plain, Bold: plain, Muted: plain, Success: plain, Warning: plain, Error: plain}
}

// Println writes a line to the output stream.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the output stream.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Warning writes a warning line to the error stream.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errw, r.Styles().Warning.Render("Warning: ")+msg)
}

// Error writes an error line to the error stream.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errw, r.Styles().Error.Render("Error: ")+msg)
}

// JSON writes v as indented JSON to the output stream.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
