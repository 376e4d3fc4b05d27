package commands

import (
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/dataview-labs/duckview/internal/cli/output"
	"github.com/dataview-labs/duckview/internal/frontend"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check which front ends are installed",
		Long: `Check the environment duckview runs in.

Probes the search path for the duckdb shell and Harlequin, reports what was
found, and tells you which front end a session would actually get.`,
		Example: `  # Run the environment check
  duckview doctor

  # Output as JSON
  duckview doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Checks          []BinaryCheck `json:"checks"`
	HarlequinUsable bool          `json:"harlequin_usable"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

// BinaryCheck reports whether one front end executable was found.
type BinaryCheck struct {
	FrontEnd string `json:"frontend"`
	Binary   string `json:"binary"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cfg := getConfig()
	r := newRenderer(cmd)
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	out := buildDoctorOutput(frontend.PathLocator{}, cfg.DuckDBBin, cfg.HarlequinBin)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}
	renderDoctorText(r, out)
	return nil
}

// locator is threaded through so tests can substitute a fake.
func buildDoctorOutput(locator frontend.Locator, duckdbBin, harlequinBin string) *DoctorOutput {
	out := &DoctorOutput{}

	for _, probe := range []struct {
		frontEnd string
		binary   string
	}{
		{frontEnd: frontend.DuckDB.String(), binary: duckdbBin},
		{frontEnd: frontend.Harlequin.String(), binary: harlequinBin},
	} {
		check := BinaryCheck{
			FrontEnd: probe.frontEnd,
			Binary:   probe.binary,
			Found:    locator.Exists(probe.binary),
		}
		if check.Found {
			if p, err := exec.LookPath(probe.binary); err == nil {
				check.Path = p
			}
		}
		out.Checks = append(out.Checks, check)
	}

	duckdbFound := out.Checks[0].Found
	out.HarlequinUsable = out.Checks[1].Found

	if !duckdbFound {
		out.Recommendations = append(out.Recommendations,
			"Install the duckdb CLI and make sure it is on your PATH; nothing works without it")
	}
	if !out.HarlequinUsable {
		out.Recommendations = append(out.Recommendations,
			"Install Harlequin (pipx install harlequin) to use --ui harlequin; sessions fall back to the duckdb shell until then")
	}

	return out
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println(styles.Header.Render("duckview environment check"))
	r.Println("")

	for _, check := range out.Checks {
		status := styles.Error.Render("missing")
		if check.Found {
			status = styles.Success.Render("found")
		}
		r.Printf("  %-10s %-12s %s", check.FrontEnd, check.Binary, status)
		if check.Path != "" {
			r.Printf("  %s", styles.Muted.Render(check.Path))
		}
		r.Println("")
	}
	r.Println("")

	if out.HarlequinUsable {
		r.Println("Sessions with --ui harlequin will use Harlequin.")
	} else {
		r.Println("Sessions with --ui harlequin will fall back to the duckdb shell.")
	}

	if len(out.Recommendations) > 0 {
		r.Println("")
		r.Println(styles.Bold.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("  %d. %s\n", i+1, rec)
		}
	}
}
