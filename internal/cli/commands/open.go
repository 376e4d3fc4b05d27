package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataview-labs/duckview/internal/cli/config"
	"github.com/dataview-labs/duckview/internal/frontend"
	"github.com/dataview-labs/duckview/internal/script"
	"github.com/dataview-labs/duckview/internal/session"
	"github.com/dataview-labs/duckview/internal/source"
)

// OpenOptions holds options for the open command.
type OpenOptions struct {
	Type    string
	Profile string
	UI      string
}

// NewOpenCommand creates the open command.
func NewOpenCommand() *cobra.Command {
	opts := &OpenOptions{}

	cmd := &cobra.Command{
		Use:   "open <reference>",
		Short: "Open a dataset in an interactive DuckDB session",
		Long: `Open a CSV or Parquet dataset in an interactive DuckDB session.

The reference can be a local path or an s3:// URI. duckview generates the
initialization script (extension setup, credential loading, table
materialization, schema introspection), launches the front end attached to
your terminal, and cleans up when the session ends.

If Harlequin is requested but not installed, the session falls back to the
duckdb shell with a warning.`,
		Example: `  # Open a local CSV
  duckview open ./events.csv

  # Open a Parquet file on S3 with a named AWS profile
  duckview open s3://bucket/data.parquet --type parquet --profile work

  # Use the Harlequin TUI instead of the duckdb shell
  duckview open ./events.csv --ui harlequin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "File type: csv, parquet (default from config: csv)")
	cmd.Flags().StringVarP(&opts.Profile, "profile", "p", "", "AWS profile for S3 access")
	cmd.Flags().StringVarP(&opts.UI, "ui", "u", "", "Front end: duckdb, harlequin (default from config: duckdb)")

	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"csv", "parquet"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("ui", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"duckdb", "harlequin"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// resolveAndBuild resolves the requested front end and builds the init
// script for it. The builder must see the resolved choice, not the requested
// one: a session downgraded from Harlequin still gets the duckdb shell's
// presentation settings.
func resolveAndBuild(selector *frontend.Selector, requested frontend.Choice, p script.Params) (script.Script, frontend.Choice) {
	resolved, _ := selector.Resolve(requested)
	p.FrontEnd = resolved
	return script.Build(p), resolved
}

func runOpen(cmd *cobra.Command, reference string, opts *OpenOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	format, err := script.ParseFormat(valueOr(opts.Type, cfg.Type))
	if err != nil {
		return err
	}
	requested, err := frontend.ParseChoice(valueOr(opts.UI, cfg.UI))
	if err != nil {
		return err
	}
	profile := valueOr(opts.Profile, cfg.Profile)

	src := source.Classify(reference)
	logger.Info("opening dataset",
		"reference", reference, "kind", src.Kind.String(), "type", format.String())

	selector := frontend.NewSelector(frontend.SelectorConfig{
		DuckDBBin:    cfg.DuckDBBin,
		HarlequinBin: cfg.HarlequinBin,
		Logger:       logger,
	})

	s, resolved := resolveAndBuild(selector, requested, script.Params{
		Source:  src,
		Format:  format,
		Profile: profile,
		Table:   cfg.Table,
		Logger:  logger,
	})

	runner := session.NewRunner(selector, nil, logger)
	outcome := runner.Run(cmd.Context(), s, resolved)

	switch outcome.State {
	case session.Success:
		logger.Info("session ended, rerun the command to query again")
		return nil
	case session.ProcessFailed:
		return &ExitError{
			Code: outcome.ExitCode,
			Err:  fmt.Errorf("%s exited with code %d", selector.Binary(resolved), outcome.ExitCode),
		}
	case session.ExecutableNotFound:
		return &ExitError{Code: 1, Err: outcome.Err}
	default:
		// Already logged with full detail; the session still ended and
		// cleanup ran, so this is not treated as a process failure.
		return nil
	}
}
