// Package main is the entry point for the phonemask command.
package main

import (
	"os"

	"github.com/dshills/phonemask/cmd/phonemask/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
