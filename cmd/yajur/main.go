// Package main is the entry point for the YAJUR CLI.
package main

import (
	"os"

	"github.com/quantumvedas/yajur/cmd/yajur/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
