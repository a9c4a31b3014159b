package main

import (
	"fmt"
	"os"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/internal/cmd"
)

// main resolves config paths and hands off to the command tree.
func main() {
	// Initialize paths early - this must succeed for the application to function
	if err := config.InitPaths(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
