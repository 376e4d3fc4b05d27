package commands

import (
	"github.com/spf13/cobra"

	"github.com/dataview-labs/duckview/internal/cli/config"
	"github.com/dataview-labs/duckview/internal/frontend"
	"github.com/dataview-labs/duckview/internal/script"
	"github.com/dataview-labs/duckview/internal/source"
)

// ScriptOptions holds options for the script command.
type ScriptOptions struct {
	Type    string
	Profile string
	UI      string
}

// NewScriptCommand creates the script command.
func NewScriptCommand() *cobra.Command {
	opts := &ScriptOptions{}

	cmd := &cobra.Command{
		Use:   "script <reference>",
		Short: "Print the initialization script without starting a session",
		Long: `Print the DuckDB initialization script that open would run.

Useful for debugging, or for generating a script to run on another machine.
The requested front end is taken at face value here: no availability probing
happens, since the target machine may differ from this one.`,
		Example: `  # Show the script for a local CSV
  duckview script ./events.csv

  # Script for an S3 Parquet dataset, as Harlequin would run it
  duckview script s3://bucket/data.parquet --type parquet --ui harlequin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "File type: csv, parquet")
	cmd.Flags().StringVarP(&opts.Profile, "profile", "p", "", "AWS profile for S3 access")
	cmd.Flags().StringVarP(&opts.UI, "ui", "u", "", "Front end the script targets: duckdb, harlequin")

	return cmd
}

func runScript(cmd *cobra.Command, reference string, opts *ScriptOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	format, err := script.ParseFormat(valueOr(opts.Type, cfg.Type))
	if err != nil {
		return err
	}
	choice, err := frontend.ParseChoice(valueOr(opts.UI, cfg.UI))
	if err != nil {
		return err
	}

	s := script.Build(script.Params{
		Source:   source.Classify(reference),
		Format:   format,
		Profile:  valueOr(opts.Profile, cfg.Profile),
		Table:    cfg.Table,
		FrontEnd: choice,
		Logger:   logger,
	})

	_, err = cmd.OutOrStdout().Write([]byte(s.String()))
	return err
}
