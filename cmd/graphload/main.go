// Package main provides the graphload CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/graphload/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
