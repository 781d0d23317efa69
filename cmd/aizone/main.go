// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Command aizone loads a behaviour-tree definition and a zone configuration,
// builds a zone.Zone from an entities file, and ticks it on a wall-clock
// timer until interrupted, reporting through internal/xlog and (optionally)
// a Prometheus /metrics endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aizone",
	Short: "Run and inspect behaviour-tree driven zones",
	Long: `aizone loads a tree definition written in the parser's Name{params}(children)
grammar, attaches it to every character in an entities file, and runs the
zone scheduler's tick loop until the process is interrupted.`,
}

func main() {
	rootCmd.AddCommand(runCmd(), validateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
