// Package script builds the DuckDB initialization script for a session.
//
// The script materializes the dataset into a table and surfaces its schema
// so the user can start querying the moment the front end comes up. Order
// matters: extensions must be loaded before any statement references their
// functions, and the table must exist before the schema introspection at
// the end.
package script

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dataview-labs/duckview/internal/frontend"
	"github.com/dataview-labs/duckview/internal/source"
)

// Format selects the DuckDB reader function used to load the dataset.
type Format int

const (
	// CSV loads through read_csv.
	CSV Format = iota
	// Parquet loads through read_parquet.
	Parquet
)

func (f Format) String() string {
	if f == Parquet {
		return "parquet"
	}
	return "csv"
}

// ParseFormat maps a --type flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "csv", "":
		return CSV, nil
	case "parquet":
		return Parquet, nil
	default:
		return CSV, fmt.Errorf("unknown file type %q (supported: csv, parquet)", s)
	}
}

func (f Format) reader() string {
	if f == Parquet {
		return "read_parquet"
	}
	return "read_csv"
}

// DefaultTable is the table the dataset is materialized into.
const DefaultTable = "data"

// Script is an ordered, immutable list of initialization statements.
type Script struct {
	statements []string
}

// Statements returns the statements in order.
func (s Script) Statements() []string {
	out := make([]string, len(s.statements))
	copy(out, s.statements)
	return out
}

// String serializes the script as the front end reads it: one statement per
// line, in order, with a trailing newline.
func (s Script) String() string {
	return strings.Join(s.statements, "\n") + "\n"
}

// SQL returns only the SQL statements, dropping the duckdb shell dot
// commands. Used when the script is executed through a database connection
// instead of the shell.
func (s Script) SQL() []string {
	var out []string
	for _, stmt := range s.statements {
		if strings.HasPrefix(stmt, ".") {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// Params are the inputs to Build.
type Params struct {
	Source  source.Descriptor
	Format  Format
	Profile string // AWS profile name; empty means ambient credentials
	Table   string // empty means DefaultTable

	// FrontEnd must be the resolved front end, not the requested one: the
	// dot commands emitted for the duckdb shell are unsupported noise in
	// Harlequin.
	FrontEnd frontend.Choice

	Logger *slog.Logger
}

// Build produces the initialization script for one session. Statement order
// is fixed: extension setup, credentials, table load, presentation settings,
// schema introspection.
//
// The raw reference is inlined into the SQL verbatim. Quote characters in it
// are not escaped, same as typing the statement into the shell by hand.
func Build(p Params) Script {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	table := p.Table
	if table == "" {
		table = DefaultTable
	}

	var stmts []string

	if p.Source.IsS3() {
		logger.Info("s3 reference detected, adding aws extension statements",
			"bucket", p.Source.Bucket)
		stmts = append(stmts,
			"INSTALL aws;",
			"LOAD aws;",
			"INSTALL httpfs;",
			"LOAD httpfs;",
		)
		if p.Profile != "" {
			stmts = append(stmts, fmt.Sprintf("CALL load_aws_credentials('%s');", p.Profile))
		} else {
			logger.Warn("s3 reference without an AWS profile, DuckDB will use ambient credentials")
		}
	}

	stmts = append(stmts, fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM %s('%s');",
		table, p.Format.reader(), p.Source.Raw,
	))

	if p.FrontEnd == frontend.DuckDB {
		stmts = append(stmts, ".mode box", ".echo on")
	}

	stmts = append(stmts, fmt.Sprintf("PRAGMA table_info('%s');", table))

	return Script{statements: stmts}
}
