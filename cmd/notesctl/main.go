// Command notesctl is a command-line client for the notes service.
package main

import (
	"fmt"
	"os"
)

// Version is overridden at build time via -ldflags.
var Version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
