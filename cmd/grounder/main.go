// Package main provides the entry point for the grounder CLI.
package main

import (
	"os"

	"github.com/evidenceai/grounder/cmd/grounder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
