// Command pathfind finds shortest-cost paths and runs path scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/pathfind/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
