// Package main is the gofluff command.
package main

import (
	"os"

	"github.com/leapstack-labs/gofluff/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
