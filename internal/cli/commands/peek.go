package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dataview-labs/duckview/internal/cli/config"
	"github.com/dataview-labs/duckview/internal/cli/output"
	"github.com/dataview-labs/duckview/internal/preview"
	"github.com/dataview-labs/duckview/internal/script"
	"github.com/dataview-labs/duckview/internal/source"
)

// PeekOptions holds options for the peek command.
type PeekOptions struct {
	Type    string
	Profile string
	Format  string
	Limit   int
}

// NewPeekCommand creates the peek command.
func NewPeekCommand() *cobra.Command {
	opts := &PeekOptions{}

	cmd := &cobra.Command{
		Use:   "peek <reference>",
		Short: "Preview a dataset's schema and first rows without a session",
		Long: `Load the dataset into an in-memory DuckDB and print its schema, row
count, and first rows. No interactive front end is launched; this runs the
same initialization statements a session would, through the embedded engine.`,
		Example: `  # Peek at a local CSV
  duckview peek ./events.csv

  # First 50 rows of an S3 Parquet dataset, as JSON
  duckview peek s3://bucket/data.parquet --type parquet --limit 50 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeek(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "File type: csv, parquet")
	cmd.Flags().StringVarP(&opts.Profile, "profile", "p", "", "AWS profile for S3 access")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", preview.DefaultLimit, "Number of rows to preview")

	return cmd
}

func runPeek(cmd *cobra.Command, reference string, opts *PeekOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := newRenderer(cmd)

	switch opts.Format {
	case "", "table", "json":
	default:
		return fmt.Errorf("unknown format %q (supported: table, json)", opts.Format)
	}

	format, err := script.ParseFormat(valueOr(opts.Type, cfg.Type))
	if err != nil {
		return err
	}

	result, err := preview.Fetch(cmd.Context(), preview.Options{
		Source:  source.Classify(reference),
		Format:  format,
		Profile: valueOr(opts.Profile, cfg.Profile),
		Table:   cfg.Table,
		Limit:   opts.Limit,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to preview %s: %w", reference, err)
	}

	if opts.Format == "json" || (opts.Format == "" && r.EffectiveMode() == output.ModeJSON) {
		return r.JSON(result)
	}
	renderPeekTables(r, result)
	return nil
}

func renderPeekTables(r *output.Renderer, result *preview.Result) {
	styles := r.Styles()

	r.Println(styles.Header.Render(fmt.Sprintf("Table %q (%d rows)", result.Table, result.RowCount)))
	r.Println("")

	schema := table.NewWriter()
	schema.SetStyle(table.StyleLight)
	schema.AppendHeader(table.Row{"Column", "Type", "Nullable"})
	for _, col := range result.Columns {
		schema.AppendRow(table.Row{col.Name, col.Type, col.Nullable})
	}
	r.Println(schema.Render())
	r.Println("")

	if len(result.Rows) == 0 {
		r.Println("(0 rows)")
		return
	}

	data := table.NewWriter()
	data.SetStyle(table.StyleLight)
	header := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col.Name
	}
	data.AppendHeader(header)
	for _, row := range result.Rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		data.AppendRow(tr)
	}
	r.Println(data.Render())
}
