package script

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dataview-labs/duckview/internal/frontend"
	"github.com/dataview-labs/duckview/internal/source"
	"github.com/dataview-labs/duckview/internal/testutil"
)

func TestBuildLocalCSVForDuckDBShell(t *testing.T) {
	s := Build(Params{
		Source:   source.Classify("/data/events.csv"),
		Format:   CSV,
		FrontEnd: frontend.DuckDB,
	})

	assert.Equal(t, []string{
		"CREATE OR REPLACE TABLE data AS SELECT * FROM read_csv('/data/events.csv');",
		".mode box",
		".echo on",
		"PRAGMA table_info('data');",
	}, s.Statements())
}

func TestBuildS3ParquetWithProfile(t *testing.T) {
	// The full happy path for object storage: extensions, credentials,
	// table load, presentation, introspection, in that exact order.
	s := Build(Params{
		Source:   source.Classify("s3://bucket/data.parquet"),
		Format:   Parquet,
		Profile:  "work",
		FrontEnd: frontend.DuckDB,
	})

	assert.Equal(t, []string{
		"INSTALL aws;",
		"LOAD aws;",
		"INSTALL httpfs;",
		"LOAD httpfs;",
		"CALL load_aws_credentials('work');",
		"CREATE OR REPLACE TABLE data AS SELECT * FROM read_parquet('s3://bucket/data.parquet');",
		".mode box",
		".echo on",
		"PRAGMA table_info('data');",
	}, s.Statements())
}

func TestBuildS3WithoutProfile(t *testing.T) {
	logger, captured := testutil.NewCaptureLogger()

	s := Build(Params{
		Source:   source.Classify("s3://bucket/data.csv"),
		Format:   CSV,
		FrontEnd: frontend.DuckDB,
		Logger:   logger,
	})

	for _, stmt := range s.Statements() {
		assert.NotContains(t, stmt, "load_aws_credentials",
			"no credential statement without a profile")
	}
	assert.Equal(t, 1, captured.CountLevel(slog.LevelWarn),
		"falling back to ambient credentials must be logged exactly once")
}

func TestBuildHarlequinOmitsDotCommands(t *testing.T) {
	s := Build(Params{
		Source:   source.Classify("/data/events.csv"),
		Format:   CSV,
		FrontEnd: frontend.Harlequin,
	})

	assert.Equal(t, []string{
		"CREATE OR REPLACE TABLE data AS SELECT * FROM read_csv('/data/events.csv');",
		"PRAGMA table_info('data');",
	}, s.Statements())
}

func TestBuildCustomTable(t *testing.T) {
	s := Build(Params{
		Source:   source.Classify("/data/events.csv"),
		Format:   CSV,
		Table:    "events",
		FrontEnd: frontend.Harlequin,
	})

	assert.Equal(t, []string{
		"CREATE OR REPLACE TABLE events AS SELECT * FROM read_csv('/data/events.csv');",
		"PRAGMA table_info('events');",
	}, s.Statements())
}

func TestBuildIsIdempotent(t *testing.T) {
	p := Params{
		Source:   source.Classify("s3://bucket/data.parquet"),
		Format:   Parquet,
		Profile:  "work",
		FrontEnd: frontend.DuckDB,
	}

	assert.Equal(t, Build(p).String(), Build(p).String())
}

func TestStringEndsWithNewline(t *testing.T) {
	s := Build(Params{Source: source.Classify("x.csv")})
	out := s.String()
	assert.NotEmpty(t, out)
	assert.Equal(t, byte('\n'), out[len(out)-1])
}

func TestSQLStripsDotCommands(t *testing.T) {
	s := Build(Params{
		Source:   source.Classify("/data/events.csv"),
		Format:   CSV,
		FrontEnd: frontend.DuckDB,
	})

	for _, stmt := range s.SQL() {
		assert.NotEqual(t, byte('.'), stmt[0])
	}
	assert.Len(t, s.SQL(), 2)
}

func TestStatementsReturnsCopy(t *testing.T) {
	s := Build(Params{Source: source.Classify("x.csv")})
	got := s.Statements()
	got[0] = "mutated"
	assert.NotEqual(t, "mutated", s.Statements()[0], "Script must stay immutable")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: CSV},
		{in: "", want: CSV},
		{in: "parquet", want: Parquet},
		{in: "json", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
