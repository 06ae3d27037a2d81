package main

import (
	"fmt"
	"os"
)

func main() {
	// ghw prints warnings to stdout for missing PCI data, which would
	// corrupt the TUI and dump output
	if os.Getenv("GHW_DISABLE_WARNINGS") == "" {
		os.Setenv("GHW_DISABLE_WARNINGS", "1")
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
