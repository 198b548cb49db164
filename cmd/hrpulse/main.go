// main is the entry point for the hrpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/hrpulse/hrpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
