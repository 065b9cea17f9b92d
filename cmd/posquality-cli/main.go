// Package main is the entry point for the posquality CLI.
package main

import (
	"os"

	"github.com/kailas-cloud/posquality/cmd/posquality-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
