// ABOUTME: Entry point for the market CLI
// ABOUTME: Command-line client for browsing and trading on the campus marketplace

package main

import (
	"fmt"
	"os"

	"github.com/campusmarket/market-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
