// Package preview loads a dataset into an in-memory DuckDB and reads back
// its schema and a handful of rows, without launching an interactive shell.
package preview

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/dataview-labs/duckview/internal/frontend"
	"github.com/dataview-labs/duckview/internal/script"
	"github.com/dataview-labs/duckview/internal/source"
)

// DefaultLimit is how many rows a preview fetches when no limit is given.
const DefaultLimit = 10

// Column describes one column of the materialized table.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Result is a dataset preview.
type Result struct {
	Table    string     `json:"table"`
	Columns  []Column   `json:"columns"`
	Rows     [][]string `json:"rows"`
	RowCount int64      `json:"row_count"`
}

// Options are the inputs to Fetch.
type Options struct {
	Source  source.Descriptor
	Format  script.Format
	Profile string
	Table   string // empty means script.DefaultTable
	Limit   int    // <= 0 means DefaultLimit
	Logger  *slog.Logger
}

// Fetch materializes the dataset into an in-memory DuckDB using the same
// statements an interactive session would run, then reads the table's schema,
// row count, and first rows.
func Fetch(ctx context.Context, opts Options) (*Result, error) {
	if opts.Table == "" {
		opts.Table = script.DefaultTable
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Harlequin here only means "SQL statements, no shell dot commands".
	s := script.Build(script.Params{
		Source:   opts.Source,
		Format:   opts.Format,
		Profile:  opts.Profile,
		Table:    opts.Table,
		FrontEnd: frontend.Harlequin,
		Logger:   opts.Logger,
	})
	for _, stmt := range s.SQL() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("initialize dataset: %w", err)
		}
	}

	result := &Result{Table: opts.Table}

	cols, err := tableColumns(ctx, db, opts.Table)
	if err != nil {
		return nil, err
	}
	result.Columns = cols

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", opts.Table)
	if err := db.QueryRowContext(ctx, countQuery).Scan(&result.RowCount); err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	rows, err := fetchRows(ctx, db, opts.Table, len(cols), opts.Limit)
	if err != nil {
		return nil, err
	}
	result.Rows = rows

	return result, nil
}

// tableColumns reads column metadata from DuckDB's information_schema.
func tableColumns(ctx context.Context, db *sql.DB, table string) ([]Column, error) {
	query := `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position
	`
	rows, err := db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []Column
	for rows.Next() {
		var col Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable); err != nil {
			return nil, fmt.Errorf("scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate column metadata: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}
	return columns, nil
}

func fetchRows(ctx context.Context, db *sql.DB, table string, width, limit int) ([][]string, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, limit)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out [][]string
	for rows.Next() {
		values := make([]any, width)
		ptrs := make([]any, width)
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make([]string, width)
		for i, v := range values {
			row[i] = FormatValue(v)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// FormatValue renders a scanned database value for display.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
