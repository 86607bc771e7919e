// Package main is the entry point for the cleaning-cost CLI.
package main

import (
	"os"

	"cleaning-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
