// Package main is the entry point for the duckview CLI.
package main

import (
	"os"

	"github.com/dataview-labs/duckview/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
