// Package main provides the archlens CLI.
package main

import (
	"os"

	"github.com/archlens-labs/archlens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
