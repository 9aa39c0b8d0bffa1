// ABOUTME: Entry point for the lessonview CLI.
// ABOUTME: Builds the cobra command tree and exits non-zero when a command fails.
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
