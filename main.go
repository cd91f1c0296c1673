// Package main is the entry point for the transitions-kpi tool.
package main

import (
	"fmt"
	"os"

	"github.com/openedx/transitions-kpi/cmd"
	"github.com/openedx/transitions-kpi/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
